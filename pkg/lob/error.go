package lob

import "errors"

var (
	ErrInvalidQuantity  = errors.New("order quantity must be greater than zero")
	ErrInvalidOrderType = errors.New("order type is neither market nor limit")
	ErrInvalidSide      = errors.New("order side is neither bid nor ask")
)
