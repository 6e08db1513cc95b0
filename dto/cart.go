package dto

// CartItemRequest is one cart line as the browser reports it. The product reference
// is optional; lines are validated one by one so a bad line never costs the snapshot.
type CartItemRequest struct {
	ProductID string  `json:"productId,omitempty" validate:"omitempty,max=64" example:"b1c2d3"`
	Title     string  `json:"title" validate:"max=200" example:"Hand-thrown plate"`
	Quantity  int     `json:"quantity" validate:"min=1,max=999" example:"2"`
	Price     float64 `json:"price" validate:"gte=0" example:"100"`
	Image     string  `json:"image,omitempty" validate:"max=500" example:"/images/plate.jpg"`
}

type CartSyncRequest struct {
	SessionID   string            `json:"sessionId" validate:"required,max=128" example:"9f1c7a1e-2a4b-4c55-9d0f-7b1f0b7f3e11"`
	Email       *string           `json:"email,omitempty" example:"customer@example.com"`
	Items       []CartItemRequest `json:"items" validate:"max=100"`
	TotalAmount float64           `json:"totalAmount" validate:"gte=0" example:"200"`
}

func (r CartSyncRequest) Validate() error {
	return GetValidator().Struct(r)
}

func (r CartItemRequest) Validate() error {
	return GetValidator().Struct(r)
}

// OKResponse is the fixed {"ok": true} acknowledgement of the best-effort cart endpoints.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

type ReminderSweepResponse struct {
	OK      bool `json:"ok" example:"true"`
	Sent    int  `json:"sent" example:"3"`
	Failed  int  `json:"failed" example:"0"`
	Skipped int  `json:"skipped" example:"1"`
}

type SnapshotOutcome string

const (
	SnapshotStored    SnapshotOutcome = "stored"
	SnapshotConverted SnapshotOutcome = "converted"
	SnapshotSkipped   SnapshotOutcome = "skipped"
)

// SnapshotResult separates what happened to the snapshot from whether the write was
// healthy. Callers on the request path only log Err.
type SnapshotResult struct {
	Outcome SnapshotOutcome
	Err     error
}

type SweepSummary struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
