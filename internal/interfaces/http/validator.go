package http

import "github.com/go-playground/validator/v10"

// validate instancia compartida: los handlers validan los DTOs con sus tags
// `validate:` antes de pasar al caso de uso.
var validate = validator.New()
