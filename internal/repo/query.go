package repo

import (
	"strconv"
	"strings"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

const (
	colID          = "id"
	colTitle       = "title"
	colDescription = "description"
	colStatus      = "status"
	colPriority    = "priority"
	colUserID      = "user_id"
	colUpdatedAt   = "updated_at"

	taskColumns = "id, title, description, status, priority, user_id, created_at, updated_at"
)

type Op string

const OpEq Op = "="

// Predicate is one "column op value" condition. Column is always one of the
// col* constants above; only Value is bound as a parameter.
type Predicate struct {
	Column string
	Op     Op
	Value  any
}

// Assignment is one entry of a SET clause. A non-empty Expr is rendered
// verbatim instead of binding Value.
type Assignment struct {
	Column string
	Value  any
	Expr   string
}

// builder renders predicates and assignments to $n placeholders and
// collects the bound arguments in order.
type builder struct {
	args []any
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) where(preds []Predicate) string {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, p.Column+" "+string(p.Op)+" "+b.bind(p.Value))
	}
	return strings.Join(parts, " AND ")
}

func (b *builder) set(assigns []Assignment) string {
	parts := make([]string, 0, len(assigns))
	for _, a := range assigns {
		if a.Expr != "" {
			parts = append(parts, a.Column+" = "+a.Expr)
			continue
		}
		parts = append(parts, a.Column+" = "+b.bind(a.Value))
	}
	return strings.Join(parts, ", ")
}

func listQuery(ownerID int64, filter model.TaskFilter, page model.Page) (string, []any) {
	preds := []Predicate{{Column: colUserID, Op: OpEq, Value: ownerID}}
	if filter.Status != nil {
		preds = append(preds, Predicate{Column: colStatus, Op: OpEq, Value: string(*filter.Status)})
	}
	if filter.Priority != nil {
		preds = append(preds, Predicate{Column: colPriority, Op: OpEq, Value: string(*filter.Priority)})
	}

	var b builder
	sql := "SELECT " + taskColumns + " FROM tasks WHERE " + b.where(preds) +
		" ORDER BY created_at DESC, id DESC" +
		" LIMIT " + b.bind(page.Limit) + " OFFSET " + b.bind(page.Offset)
	return sql, b.args
}

func updateQuery(ownerID, id int64, patch model.TaskPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrorNoFields
	}

	var assigns []Assignment
	if patch.Title != nil {
		assigns = append(assigns, Assignment{Column: colTitle, Value: *patch.Title})
	}
	if patch.Description != nil {
		assigns = append(assigns, Assignment{Column: colDescription, Value: *patch.Description})
	}
	if patch.Status != nil {
		assigns = append(assigns, Assignment{Column: colStatus, Value: string(*patch.Status)})
	}
	if patch.Priority != nil {
		assigns = append(assigns, Assignment{Column: colPriority, Value: string(*patch.Priority)})
	}
	assigns = append(assigns, Assignment{Column: colUpdatedAt, Expr: "now()"})

	var b builder
	set := b.set(assigns)
	where := b.where([]Predicate{
		{Column: colID, Op: OpEq, Value: id},
		{Column: colUserID, Op: OpEq, Value: ownerID},
	})
	sql := "UPDATE tasks SET " + set + " WHERE " + where + " RETURNING " + taskColumns
	return sql, b.args, nil
}
