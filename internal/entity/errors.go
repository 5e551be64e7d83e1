package entity

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrCompanyNameTaken = errors.New("company name already exists")
)
