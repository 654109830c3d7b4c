package models

// PayloadItem is one top-level key of a push payload with its rendered value.
type PayloadItem struct {
	Key   string
	Value string
}

// PushStatusEntry is one decoded _PushStatus record. Optional fields are nil
// when the server omitted them or sent the wrong type.
type PushStatusEntry struct {
	ID           string
	CreatedAt    *string
	UpdatedAt    *string
	Status       *string
	NumSent      *int64
	PayloadItems []PayloadItem
	RawJSON      string
}
