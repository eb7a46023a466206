package dialog

// Slot is one piece of information required to complete an order.
type Slot int

const (
	SlotQuantity Slot = iota + 1
	SlotCustomerName
	SlotPhone
	SlotAddress
)

func (s Slot) String() string {
	switch s {
	case SlotQuantity:
		return "quantity"
	case SlotCustomerName:
		return "customer_name"
	case SlotPhone:
		return "phone"
	case SlotAddress:
		return "address"
	default:
		return "unknown"
	}
}

// AskState is the state in which the dialog waits for this slot.
func (s Slot) AskState() State {
	switch s {
	case SlotQuantity:
		return AskQuantity
	case SlotCustomerName:
		return AskCustomerName
	case SlotPhone:
		return AskPhone
	case SlotAddress:
		return AskAddress
	default:
		return Unknown
	}
}

// SlotFor returns the slot an ask state is waiting for.
func SlotFor(s State) (Slot, bool) {
	switch s {
	case AskQuantity:
		return SlotQuantity, true
	case AskCustomerName:
		return SlotCustomerName, true
	case AskPhone:
		return SlotPhone, true
	case AskAddress:
		return SlotAddress, true
	default:
		return 0, false
	}
}
