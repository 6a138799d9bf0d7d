package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/organizeme/internal/model"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Done     func(TargetArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Category func(CategoryArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeCategory:
		if handlers.Category == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "category handler not configured"}
		}
		return handlers.Category(*cmd.Category)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

// ResolveTarget finds the task a target names: a 1-based row in rows, or a
// prefix of exactly one task id.
func ResolveTarget(target string, rows []model.Task) (model.Task, error) {
	target = strings.TrimSpace(strings.ToLower(target))
	if n, err := strconv.Atoi(target); err == nil {
		if n < 1 || n > len(rows) {
			return model.Task{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("row %d out of range", n)}
		}
		return rows[n-1], nil
	}
	var found []model.Task
	for _, t := range rows {
		if strings.HasPrefix(strings.ToLower(t.ID), target) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return model.Task{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", target)}
	default:
		return model.Task{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%q matches %d tasks", target, len(found))}
	}
}
