package domain

import "errors"

var (
	// ErrAlreadySaved は同じ解析結果を既に保存している場合のエラー
	ErrAlreadySaved = errors.New("analysis is already saved")

	// ErrSavedItemNotFound は保存アイテムが存在しないか、
	// 要求したユーザーが所有していない場合のエラー。
	// 存在しないことと他人の所有物であることは呼び出し側から区別できない。
	ErrSavedItemNotFound = errors.New("saved item not found")
)
