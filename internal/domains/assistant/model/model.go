package model

const (
	IntentContinue = "continue"
	IntentCancel   = "cancel"
	IntentConfirm  = "confirm"
	IntentError    = "error"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

const (
	SlotDateLayout = "2006-01-02"
	SlotTimeLayout = "15:04"
)

// BookingSlots is the partial booking the assistant fills in across turns.
// A nil slot is still unknown.
type BookingSlots struct {
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	Notes *string `json:"notes"`
}

// Merge returns s with every non-nil slot of other laid over it.
func (s BookingSlots) Merge(other BookingSlots) BookingSlots {
	if other.Date != nil {
		s.Date = other.Date
	}

	if other.Time != nil {
		s.Time = other.Time
	}

	if other.Notes != nil {
		s.Notes = other.Notes
	}

	return s
}

func (s BookingSlots) Complete() bool {
	return s.Date != nil && s.Time != nil
}

type Extraction struct {
	TextReply      string       `json:"textReply"`
	ExtractedSlots BookingSlots `json:"extractedSlots"`
	Intent         string       `json:"intent"`
	ResetFlag      bool         `json:"resetFlag"`
}

type CatalogItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type OrderLine struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderState struct {
	Lines []OrderLine `json:"lines"`
	Total float64     `json:"total"`
}

type OrderAction struct {
	Type        string `json:"type"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type OrderExtraction struct {
	TextReply string        `json:"textReply"`
	Actions   []OrderAction `json:"actions"`
	Finalize  bool          `json:"finalize"`
	Failed    bool          `json:"-"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryEntry is one turn of an order conversation.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
