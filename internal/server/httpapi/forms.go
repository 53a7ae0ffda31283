package httpapi

// Request forms. Validation runs through gin's binding tags
// (go-playground/validator); bounds mirror the persistence schema.

// RegisterForm carries a new account registration.
type RegisterForm struct {
	Username string `form:"username" json:"username" binding:"required,max=50"`
	Email    string `form:"email" json:"email" binding:"required,email,max=100"`
	Password string `form:"password" json:"password" binding:"required,min=6,max=100"`
}

// LoginForm carries a login attempt. UsernameOrEmail matches either column.
type LoginForm struct {
	UsernameOrEmail string `form:"usernameOrEmail" json:"usernameOrEmail" binding:"required,max=100"`
	Password        string `form:"password" json:"password" binding:"required"`
}

// ProductForm carries the caller-editable product fields for add and update.
type ProductForm struct {
	Name            string  `form:"name" json:"name" binding:"required,max=100"`
	Category        string  `form:"category" json:"category" binding:"required,max=50"`
	Price           float64 `form:"price" json:"price" binding:"gte=0"`
	MinimumQuantity int     `form:"minimumQuantity" json:"minimumQuantity" binding:"gte=1"`
	Discount        float64 `form:"discount" json:"discount" binding:"gte=0,lte=100"`
}
