package catalog

type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	Phone       string `json:"phone"`
	LogoURL     string `json:"logo_url"`
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}
