package service

import "errors"

// Precondition failures are routine outcomes the client is expected to
// handle; handlers map them to 4xx codes. Anything else coming out of a
// service is an infrastructure fault and surfaces as a generic 500.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientGold   = errors.New("insufficient gold")
	ErrInsufficientUsd    = errors.New("insufficient usd")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrAlreadyOwned       = errors.New("already owned")
	ErrNothingToClaim     = errors.New("nothing to claim")
	ErrDailyLimitReached  = errors.New("daily ad limit reached")
	ErrInvalidSignature   = errors.New("invalid ad signature")
	ErrAdNotFound         = errors.New("ad view not found")
	ErrAlreadyRedeemed    = errors.New("ad view already redeemed")
	ErrSettingsMissing    = errors.New("settings row missing")
)
