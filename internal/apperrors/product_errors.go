package apperrors

// Product errors.
var (
	ErrProductNotFound      = NotFound("ProductNotFound", "The product was not found.")
	ErrProductCodeNotUnique = BadRequest("ProductCodeNotUnique", "The product code is already in use. Please choose a unique product code.")
	ErrUnauthorizedAccess   = Unauthorized("UnauthorizedAccess", "You do not have permission to perform this action.")
)
