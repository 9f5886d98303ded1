package service

import "errors"

// Domain errors. The HTTP layer maps these to client responses; anything else
// is treated as an internal failure.
var (
	ErrValidation = errors.New("validation") // 400

	ErrEmailInUse = errors.New("email already in use")        // 409
	ErrNameInUse  = errors.New("product name already in use") // 409

	ErrCustomerNotFound  = errors.New("customer not found")                      // 404
	ErrOrderNotFound     = errors.New("order not found")                         // 404
	ErrProductsNotFound  = errors.New("no products found with the given ids")    // 404
	ErrProductNotFound   = errors.New("one or more products could not be found") // 404
	ErrInsufficientStock = errors.New("there are products without enough stock") // 409
)
