package contracts

type AccountCategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=BANK CASH EWALLET OTHER"`
}

type AccountCategoryUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	Type *string `json:"type" binding:"omitempty,oneof=BANK CASH EWALLET OTHER"`
}
