package contracts

type TransactionCategoryCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=income expense"`
}

type TransactionCategoryUpdateRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=100"`
	Type   *string `json:"type" binding:"omitempty,oneof=income expense"`
	IsHide *bool   `json:"is_hide" binding:"omitempty"`
}
