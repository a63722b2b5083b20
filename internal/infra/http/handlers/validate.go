package handlers

import "github.com/go-playground/validator/v10"

// validate checks request structs for required fields only. Email and phone
// contents are stored as given; nothing here judges their format.
var validate = validator.New()
