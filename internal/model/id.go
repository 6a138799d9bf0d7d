package model

import "github.com/google/uuid"

const (
	PrefixTask     = "task"
	PrefixSubtask  = "sub"
	PrefixCategory = "cat"
)

func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
