package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/organizeme/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeCategory Type = "category"
	TypeShow     Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const DueLayout = "2006-01-02"

type AddArgs struct {
	Title    string
	Due      *time.Time
	Category string
}

type TargetArgs struct {
	Target string
}

// CategoryArgs creates a category, or removes one when Delete is set.
type CategoryArgs struct {
	Name   string
	Color  string
	Delete bool
}

type ShowArgs struct {
	View string
}

const (
	ViewTasks    = "tasks"
	ViewCalendar = "calendar"
)

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Done     *TargetArgs
	Delete   *TargetArgs
	Category *CategoryArgs
	Show     *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		target, err := parseTarget(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: target}, nil
	case TypeDelete:
		target, err := parseTarget(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: target}, nil
	case TypeCategory:
		return parseCategory(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd treats due:YYYY-MM-DD and cat:<name> tokens as options; every
// other word belongs to the title.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	var title []string
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due, err := time.ParseInLocation(DueLayout, arg[len("due:"):], time.Local)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("due date must be %s", DueLayout)}
			}
			out.Due = &due
		case strings.HasPrefix(lower, "cat:"):
			out.Category = strings.TrimSpace(arg[len("cat:"):])
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseTarget(head string, args []string) (*TargetArgs, error) {
	if len(args) != 1 {
		return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: head + " requires a row number or task id"}
	}
	return &TargetArgs{Target: strings.ToLower(args[0])}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	if strings.EqualFold(args[0], "delete") && len(args) > 1 {
		name := strings.TrimSpace(strings.Join(args[1:], " "))
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name, Delete: true}}, nil
	}
	color := ""
	if last := strings.ToLower(args[len(args)-1]); strings.HasPrefix(last, "bg-") {
		if !model.IsPaletteColor(last) {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown color: %s", last)}
		}
		color = last
		args = args[:len(args)-1]
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name, Color: color}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires tasks or calendar"}
	}
	view := strings.ToLower(args[0])
	if view != ViewTasks && view != ViewCalendar {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", view)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: view}}, nil
}
