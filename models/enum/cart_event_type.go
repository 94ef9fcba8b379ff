package enum

// CartEventType names a single cart state transition.
type CartEventType string

const (
	CartEventTypeItemAdded         CartEventType = "item_added"         // new line or +1 from the catalog grid
	CartEventTypeQuantityIncreased CartEventType = "quantity_increased" // +1 from the cart panel
	CartEventTypeQuantityDecreased CartEventType = "quantity_decreased" // -1, line dropped at zero
	CartEventTypeLineRemoved       CartEventType = "line_removed"       // whole line removed
	CartEventTypeCartCleared       CartEventType = "cart_cleared"       // session ended
)

// CartEventTypes lists every known event type in a stable order.
var CartEventTypes = []CartEventType{
	CartEventTypeItemAdded,
	CartEventTypeQuantityIncreased,
	CartEventTypeQuantityDecreased,
	CartEventTypeLineRemoved,
	CartEventTypeCartCleared,
}

func (t CartEventType) Valid() bool {
	for _, known := range CartEventTypes {
		if t == known {
			return true
		}
	}
	return false
}
