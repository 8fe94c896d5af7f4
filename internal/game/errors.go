package game

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrEmptyCardPool    = errors.New("card pool is empty")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrWrongState       = errors.New("action not allowed in current game state")
	ErrNotYourTurn      = errors.New("it is not your turn")
)
