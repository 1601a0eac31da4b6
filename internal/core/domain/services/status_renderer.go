package services

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/order"
)

// markupReserved is the set of characters the rendering surface's MarkdownV2
// parser treats as formatting directives. Every free-form field is escaped
// against this set so customer-supplied text can never be interpreted as
// markup.
const markupReserved = "_*[]()~`>#+-=|{}.!"

// Action is one interactive element offered on a notification message.
// Token carries the "<verb>_<orderId>" encoding the engine parses back when
// the element is pressed.
type Action struct {
	Label string
	Token string
}

// Payload is a rendered notification: the message text and the interactive
// actions valid at the order's current status. The action set is advisory
// for display only; authorization is re-verified when an action is actually
// invoked, so a stale payload cannot be used to bypass it.
type Payload struct {
	Text    string
	Actions []Action
}

// StatusRenderer is the pure mapping from an order to its notification
// payload. It holds no state and performs no I/O, so the same order always
// renders to the same payload.
type StatusRenderer struct{}

// NewStatusRenderer creates a StatusRenderer.
func NewStatusRenderer() StatusRenderer {
	return StatusRenderer{}
}

// statusDisplayNames maps statuses to the names shown to staff.
func statusDisplayNames() map[order.Status]string {
	return map[order.Status]string{
		order.New:       "New",
		order.Taken:     "Taken",
		order.Delivered: "Delivered",
	}
}

// Render produces the notification payload for the order's current state.
func (r StatusRenderer) Render(o *order.Order) (Payload, error) {
	if err := o.Validate(); err != nil {
		return Payload{}, err
	}

	return Payload{
		Text:    r.renderText(o),
		Actions: r.renderActions(o),
	}, nil
}

func (r StatusRenderer) renderText(o *order.Order) string {
	details := o.Details()

	courierLine := ""
	if c := o.Courier(); c != nil {
		courierLine = fmt.Sprintf("\n🚀 Courier: @%s", EscapeMarkup(c.String()))
	}

	lines := []string{
		fmt.Sprintf("🧾 *Order №%s*", EscapeMarkup(o.ID().String())),
		"",
		fmt.Sprintf("👤 *Customer:* @%s", EscapeMarkup(o.Customer().String())),
		fmt.Sprintf("🏙 *City:* %s", renderField(details.City)),
		fmt.Sprintf("🚚 *Delivery:* %s", renderField(details.DeliveryMethod)),
		fmt.Sprintf("💳 *Payment:* %s", renderField(details.PaymentMethod)),
		fmt.Sprintf("📅 *Date:* %s", renderField(details.Date)),
		fmt.Sprintf("⏰ *Time:* %s", renderField(details.Time)),
		"",
		fmt.Sprintf("🛒 *Contents:*\n%s", EscapeMarkup(details.Content)),
		"",
		fmt.Sprintf("ℹ️ Status: *%s*%s", statusDisplayNames()[o.Status()], courierLine),
	}

	return strings.Join(lines, "\n")
}

// renderActions returns the action set valid at the order's status:
// New -> {Claim}; Taken -> {Complete, Release}; Delivered -> none, the
// terminal display carries no interactive elements.
func (r StatusRenderer) renderActions(o *order.Order) []Action {
	id := o.ID().String()

	switch o.Status() {
	case order.New:
		return []Action{
			{Label: "📦 Take order", Token: actionToken(order.ActionClaim, id)},
		}
	case order.Taken:
		return []Action{
			{Label: "✅ Delivered", Token: actionToken(order.ActionComplete, id)},
			{Label: "↩️ Release", Token: actionToken(order.ActionRelease, id)},
		}
	default:
		return nil
	}
}

func actionToken(action order.Action, orderID string) string {
	return action.Verb() + "_" + orderID
}

func renderField(value string) string {
	if value == "" {
		return EscapeMarkup("-")
	}
	return EscapeMarkup(value)
}

// EscapeMarkup escapes every reserved MarkdownV2 character in the input so
// the rendering surface displays it verbatim.
func EscapeMarkup(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(markupReserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
