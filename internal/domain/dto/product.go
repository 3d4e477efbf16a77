package dto

// CreateProductRequest is the JSON body for POST /api/v1/products.
//
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name string `json:"name" binding:"required" example:"Бензин (АИ-92-К5)"`
}

// ProductResponse is the JSON shape of a catalog product.
//
// swagger:model ProductResponse
type ProductResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Бензин (АИ-92-К5)"`
}
