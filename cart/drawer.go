package cart

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

// View is the drawer's checkout step.
type View string

const (
	ViewReview       View = "review"
	ViewDeliveryForm View = "delivery_form"
)

// PaymentMethod options offered at checkout.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentTransfer PaymentMethod = "transferencia"
)

// DefaultPageSize is how many line items the review step shows per page.
const DefaultPageSize = 4

var ErrEmptyCart = errors.New("cart is empty")

// DeliveryForm carries the customer details collected on the form step.
type DeliveryForm struct {
	FullName      string        `json:"full_name" binding:"required"`
	Phone         string        `json:"phone" binding:"required"`
	Address       string        `json:"address" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"omitempty,oneof=efectivo transferencia"`
	Notes         string        `json:"notes"`
}

// Drawer drives the side-drawer checkout for one session's cart: a
// review step with paginated items, a delivery form step, and order
// submission through an injected Sink.
type Drawer struct {
	mu       sync.Mutex
	store    *Store
	sink     Sink
	open     bool
	view     View
	page     int
	pageSize int
	lastLink string
}

func NewDrawer(store *Store, sink Sink) *Drawer {
	return &Drawer{
		store:    store,
		sink:     sink,
		view:     ViewReview,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

func (d *Drawer) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

func (d *Drawer) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *Drawer) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

func (d *Drawer) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Proceed moves from the review step to the delivery form. It refuses
// when the cart has no items.
func (d *Drawer) Proceed() error {
	if d.store.Len() == 0 {
		return ErrEmptyCart
	}
	d.mu.Lock()
	d.view = ViewDeliveryForm
	d.mu.Unlock()
	return nil
}

// Back returns to the review step from the delivery form.
func (d *Drawer) Back() {
	d.mu.Lock()
	d.view = ViewReview
	d.mu.Unlock()
}

// SetPage selects the current review page. Pages are 1-indexed; values
// below 1 are clamped to 1.
func (d *Drawer) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	d.mu.Lock()
	d.page = page
	d.mu.Unlock()
}

func (d *Drawer) Page() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.page
}

// PageItems returns the line items visible on the current review page.
func (d *Drawer) PageItems() []LineItem {
	d.mu.Lock()
	page := d.page
	size := d.pageSize
	d.mu.Unlock()
	return Paginate(d.store.Items(), size, page)
}

// TotalPages reports how many review pages the cart currently spans.
// An empty cart still has one page.
func (d *Drawer) TotalPages() int {
	n := d.store.Len()
	if n == 0 {
		return 1
	}
	d.mu.Lock()
	size := d.pageSize
	d.mu.Unlock()
	return (n + size - 1) / size
}

// LastLink is the channel link produced by the most recent submit, empty
// before the first order.
func (d *Drawer) LastLink() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastLink
}

// SubmitOrder formats the order from the current cart and the given form,
// hands it to the sink, and resets the drawer (closed, review step, page 1)
// no matter what the sink answered. Delivery is fire-and-forget: a sink
// error is logged by the sink implementation, never retried, and never
// rolls the drawer back. The cart itself keeps its items.
func (d *Drawer) SubmitOrder(form DeliveryForm) (string, error) {
	if form.PaymentMethod == "" {
		form.PaymentMethod = PaymentCash
	}
	message := BuildOrderMessage(d.store.Items(), d.store.TotalPrice(), form)
	err := d.sink.Send(message)

	d.mu.Lock()
	d.open = false
	d.view = ViewReview
	d.page = 1
	if linker, ok := d.sink.(Linker); ok {
		d.lastLink = linker.Link(message)
	}
	d.mu.Unlock()
	return message, err
}

// Paginate returns the 1-indexed page window of items. Out-of-range pages
// and non-positive sizes yield an empty slice.
func Paginate(items []LineItem, pageSize, page int) []LineItem {
	if pageSize < 1 || page < 1 {
		return []LineItem{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []LineItem{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// BuildOrderMessage renders the WhatsApp order text: header, customer
// details, one block per item with unit price and subtotal, grand total
// and an optional notes line.
func BuildOrderMessage(items []LineItem, total float64, form DeliveryForm) string {
	var b strings.Builder
	b.WriteString("🌸 NUEVO PEDIDO - FLORERIA LAS GARDENIAS 🌸\n\n")
	b.WriteString("👤 Cliente: " + form.FullName + "\n")
	b.WriteString("📞 Teléfono: " + form.Phone + "\n")
	b.WriteString("📍 Dirección: " + form.Address + "\n")
	b.WriteString("💳 Forma de pago: " + string(form.PaymentMethod) + "\n\n")
	b.WriteString("🛒 Pedido:\n")
	for _, item := range items {
		subtotal := item.Price * float64(item.Quantity)
		b.WriteString("• " + item.Title + "\n")
		b.WriteString("  Precio: $" + FormatPrice(item.Price) + " x " + strconv.Itoa(item.Quantity) + "\n")
		b.WriteString("  Subtotal: $" + FormatPrice(subtotal) + "\n")
	}
	b.WriteString("\n💵 Total: $" + FormatPrice(total))
	if form.Notes != "" {
		b.WriteString("\n\n📝 Notas: " + form.Notes)
	}
	return b.String()
}
