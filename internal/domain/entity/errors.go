package entity

import "errors"

// Step failures of the per-item removal sequence. All are item-scoped: a
// worker counts them and moves on, they never abort the run.
var (
	ErrRowNotFound      = errors.New("E_ROW: target row not located")
	ErrTriggerNotFound  = errors.New("E_BTN: options trigger not located")
	ErrMenuNotOpened    = errors.New("E_MENU: menu did not open after retries")
	ErrMenuItemNotFound = errors.New("E_MENUITEM: delete entry not located")
	ErrConfirmNotFound  = errors.New("E_CONFIRM: confirmation control not located")
)
