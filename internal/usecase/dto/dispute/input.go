package disputedto

type OpenDisputeInput struct {
	OrderID     string
	ActorID     string
	Reason      string
	Description string
	Evidence    string
}

type RespondDisputeInput struct {
	DisputeID string
	ActorID   string
	Evidence  string
}

type ResolveDisputeInput struct {
	DisputeID  string
	Outcome    string
	ResolvedBy string
}
