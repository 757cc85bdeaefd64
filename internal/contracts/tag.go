package contracts

type TagCreateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type TagUpdateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
