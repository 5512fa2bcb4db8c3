package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrEmailTaken            = errors.New("a user with this email address already exists")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique")
	ErrBudgetMonthNotUnique  = errors.New("there is already a budget for this month")
	ErrSessionTokenNotUnique = errors.New("the session token is already in use")
	ErrReferenceNotFound     = errors.New("there is no resource for the ID you specified in the reference to another resource")
	ErrAmountNegative        = errors.New("the amount must not be negative")
)
