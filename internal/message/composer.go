package message

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ibericastore/whatstriage/internal/dropea"
)

// Kind is the lane a record belongs to.
type Kind int

const (
	KindPending Kind = iota
	KindIncidence
)

func (k Kind) String() string {
	if k == KindIncidence {
		return "incidence"
	}
	return "pending"
}

// Phase is the point in the simulated conversation.
type Phase int

const (
	// PhaseGreeting opens a conversation without revealing order content,
	// so the first message is short enough not to look templated.
	PhaseGreeting Phase = iota
	// PhaseFirstContact is the full order or incidence message.
	PhaseFirstContact
	// PhaseContinuation repeats the payload with a neutral opener, safe to
	// send right after a separate greeting without sounding redundant.
	PhaseContinuation
)

func (p Phase) String() string {
	switch p {
	case PhaseFirstContact:
		return "first contact"
	case PhaseContinuation:
		return "continuation"
	default:
		return "greeting"
	}
}

// ComposedMessage is the engine output: the message body, the wa.me
// destination handle (digits only, empty when the customer has no phone),
// and the phase tag the caller uses for UI feedback.
type ComposedMessage struct {
	Text   string
	Handle string
	Phase  Phase
}

// Fixed sentences shared by every pending message.
const (
	correctionDisclaimer = "Si falta algo o hay algún error, por favor envíanos la corrección."
	deliveryDisclaimer   = "Tu pedido será entregado entre las 8 y 19 horas en la dirección indicada en las próximas 24/48 horas laborales. Por favor recuerde tener el importe exacto."
)

// Fixed sentences for incidence messages.
const (
	failedDeliveryLine = "Intentamos hacer la entrega de tu pedido, pero no ha sido posible."
	pickupLine         = "El paquete te espera en el punto de recogida indicado por la mensajería. ¿Puedes pasar a recogerlo estos días?"
	redeliveryLine     = "¿Nos confirmas la dirección y cuándo podemos volver a intentar la entrega?"
)

// Composer assembles message text for (kind, phase) combinations. It is
// stateless apart from the injected random source: composing the same
// record twice with the same seeded source yields identical output.
type Composer struct {
	StoreName    string
	ProductNames map[string]string
	Pools        *Pools
	rng          *rand.Rand
}

// NewComposer builds a Composer. A nil pools argument uses the defaults; a
// nil random source is seeded from the clock.
func NewComposer(storeName string, productNames map[string]string, pools *Pools, rng *rand.Rand) *Composer {
	if pools == nil {
		pools = DefaultPools()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{
		StoreName:    storeName,
		ProductNames: productNames,
		Pools:        pools,
		rng:          rng,
	}
}

// Compose produces the message body and destination handle for one order.
// An order without a phone yields an empty handle; the caller must not
// dispatch it. An order without items yields an empty item section.
func (c *Composer) Compose(order dropea.Order, kind Kind, phase Phase) ComposedMessage {
	var text string
	switch {
	case phase == PhaseGreeting:
		text = c.greeting(order)
	case kind == KindIncidence:
		text = c.incidenceBody(order, phase)
	default:
		text = c.pendingBody(order, phase)
	}

	return ComposedMessage{
		Text:   text,
		Handle: NormalizePhone(order.Customer.Phone),
		Phase:  phase,
	}
}

// greeting is a short one-line salutation, identical for both kinds.
func (c *Composer) greeting(order dropea.Order) string {
	return fmt.Sprintf("%s, %s! Soy %s, de %s 😊",
		c.Pools.Greetings.Pick(c.rng),
		FirstName(order.Customer),
		c.Pools.Agents.Pick(c.rng),
		c.StoreName,
	)
}

// salutationLine combines a random greeting with a random agent identity.
func (c *Composer) salutationLine(name string) string {
	return fmt.Sprintf("%s, %s! Soy %s, de %s.",
		c.Pools.Greetings.Pick(c.rng),
		name,
		c.Pools.Agents.Pick(c.rng),
		c.StoreName,
	)
}

func (c *Composer) pendingBody(order dropea.Order, phase Phase) string {
	var sections []string

	if phase == PhaseContinuation {
		opener := fmt.Sprintf("%s con los detalles de tu pedido #%s:",
			c.Pools.Transitions.Pick(c.rng), order.DisplayID())
		sections = append(sections, opener)
	} else {
		header := fmt.Sprintf("*GRACIAS POR TU COMPRA EN %s*", strings.ToUpper(c.StoreName))
		salutation := c.salutationLine(DisplayName(order.Customer))
		intro := fmt.Sprintf(c.Pools.TopicIntros.Pick(c.rng), order.DisplayID())
		sections = append(sections, header, salutation+"\n"+intro)
	}

	items := "Te confirmamos que hemos recibido tu pedido que incluye lo siguiente:\n" + c.itemLines(order)
	sections = append(sections, items)

	sections = append(sections, "Total: "+FormatCurrency(order.TotalAmount)+" €")

	if block := addressBlock(order.Customer); block != "" {
		sections = append(sections, block)
	}

	sections = append(sections,
		correctionDisclaimer,
		deliveryDisclaimer,
		c.Pools.Closings.Pick(c.rng),
		c.StoreName,
	)

	return strings.Join(sections, "\n\n")
}

func (c *Composer) incidenceBody(order dropea.Order, phase Phase) string {
	code := ""
	if order.Issues != nil {
		code = order.Issues.IncidenceCode
	}
	reason := ResolveReason(code)

	var sections []string

	if phase == PhaseContinuation {
		opener := fmt.Sprintf("%s porque hay un problema con la entrega de tu pedido: %s.",
			c.Pools.Transitions.Pick(c.rng), reason)
		sections = append(sections, opener)
	} else {
		sections = append(sections,
			c.salutationLine(DisplayName(order.Customer)),
			failedDeliveryLine+"\nMotivo: "+reason+".",
		)
	}

	if code == CodePendingPickup {
		sections = append(sections, pickupLine)
	} else {
		sections = append(sections, redeliveryLine)
	}

	summary := "Pedido: " + c.compactItemList(order) +
		"\nTotal: " + FormatCurrency(order.TotalAmount) + " €"
	sections = append(sections, summary)

	return strings.Join(sections, "\n\n")
}

// itemLines renders "quantity x name" per line item.
func (c *Composer) itemLines(order dropea.Order) string {
	lines := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("%d x %s", item.Quantity, ResolveProductName(c.ProductNames, item)))
	}
	return strings.Join(lines, "\n")
}

// compactItemList joins product names without quantities.
func (c *Composer) compactItemList(order dropea.Order) string {
	names := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		names = append(names, ResolveProductName(c.ProductNames, item))
	}
	return strings.Join(names, ", ")
}

// addressBlock renders the shipping block. It is present iff the customer
// has an address, and only lists fields that are actually set — never a
// labeled blank line.
func addressBlock(c dropea.Customer) string {
	if c.Address == "" {
		return ""
	}

	lines := []string{"Lo enviaremos a:", "Dirección: " + c.Address}
	if c.City != "" {
		lines = append(lines, "Ciudad: "+c.City)
	}
	if c.State != "" {
		lines = append(lines, "Provincia: "+c.State)
	}
	if c.Zip != "" {
		lines = append(lines, "Código Postal: "+c.Zip)
	}
	return strings.Join(lines, "\n")
}
