package librarian

type DecideReq struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
