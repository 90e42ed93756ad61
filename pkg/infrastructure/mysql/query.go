package mysql

import (
	"strings"

	"github.com/pkg/errors"

	"storefront/pkg/domain/model"
)

// columns maps filterable model fields to table columns.
type columns map[string]string

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (c columns) where(filter model.Filter) (string, []interface{}, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	clauses := make([]string, 0, len(filter))
	args := make([]interface{}, 0, len(filter))
	for _, p := range filter {
		column, ok := c[p.Field]
		if !ok {
			return "", nil, errors.Errorf("unsupported filter field %q", p.Field)
		}
		switch p.Operator {
		case model.OpEq:
			clauses = append(clauses, column+" = ?")
		case model.OpGt:
			clauses = append(clauses, column+" > ?")
		case model.OpGte:
			clauses = append(clauses, column+" >= ?")
		case model.OpLt:
			clauses = append(clauses, column+" < ?")
		case model.OpLte:
			clauses = append(clauses, column+" <= ?")
		case model.OpContainsFold:
			value, _ := p.Value.(string)
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(value))+"%")
			continue
		default:
			return "", nil, errors.Errorf("unsupported operator %q", p.Operator)
		}
		args = append(args, p.Value)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// maxRows stands in for a missing LIMIT, which MySQL requires before OFFSET.
const maxRows = "18446744073709551615"

func (c columns) query(base string, query model.Query) (string, []interface{}, error) {
	where, args, err := c.where(query.Filter)
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(where)

	if query.Sort != nil {
		column, ok := c[query.Sort.Field]
		if !ok {
			return "", nil, errors.Errorf("unsupported sort field %q", query.Sort.Field)
		}
		sb.WriteString(" ORDER BY " + column)
		if query.Sort.Order == model.Descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	switch {
	case query.Limit > 0:
		sb.WriteString(" LIMIT ?")
		args = append(args, query.Limit)
	case query.Skip > 0:
		sb.WriteString(" LIMIT " + maxRows)
	}
	if query.Skip > 0 {
		sb.WriteString(" OFFSET ?")
		args = append(args, query.Skip)
	}
	return sb.String(), args, nil
}
