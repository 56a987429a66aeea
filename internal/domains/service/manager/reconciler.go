package manager

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookable/internal/domains/service/model"
	"bookable/internal/domains/service/model/dto"
	"bookable/internal/domains/service/rulecodec"
	gDto "bookable/shared/dto"
)

// reconcileRules brings the stored rule set of a schedule in line with the
// incoming one. Rules carrying an id are updated, rules without one are
// inserted, and whatever the caller no longer names is deleted. Runs inside
// the caller's transaction so a failed save never leaves a partial rule set.
func (m *managerImpl) reconcileRules(ctx context.Context, tx *sqlx.Tx, resourceID, tzName string, incoming []dto.SessionRule) error {
	kept := make([]string, 0, len(incoming))

	for _, rule := range incoming {
		row, err := rulecodec.Encode(resourceID, rule, tzName)
		if err != nil {
			return err
		}

		if row.ID != "" {
			if err := m.rules.UpdateTx(ctx, tx, ruleFields(row), ruleByIDFilter(row.ID)); err != nil {
				return err
			}
		} else {
			row.ID = uuid.NewString()

			if err := m.rules.InsertTx(ctx, tx, row); err != nil {
				return err
			}
		}

		kept = append(kept, row.ID)
	}

	filters := []any{
		gDto.Filter{
			Field:    model.FieldResourceID,
			Operator: gDto.FilterOperatorEq,
			Value:    resourceID,
		},
	}

	// An empty kept set clears the schedule outright.
	if len(kept) > 0 {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRuleID,
			ArgName:  "kept_id",
			Operator: gDto.FilterOperatorNotIn,
			Value:    kept,
		})
	}

	return m.rules.DeleteTx(ctx, tx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	})
}

func ruleByIDFilter(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRuleID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
			},
		},
	}
}

// ruleFields lists every column explicitly so cleared values such as a
// switched-off repeat still overwrite what is stored.
func ruleFields(row model.SessionRule) map[string]any {
	return map[string]any{
		"resource_id":         row.ResourceID,
		"start":               row.Start,
		"end":                 row.End,
		"all_day":             row.AllDay,
		"repeat":              row.Repeat,
		"repeat_period":       row.RepeatPeriod,
		"repeat_unit":         row.RepeatUnit,
		"repeat_until":        row.RepeatUntil,
		"repeat_until_period": row.RepeatUntilPeriod,
		"repeat_until_date":   row.RepeatUntilDate,
		"repeat_weekly_on":    row.RepeatWeeklyOn,
		"repeat_monthly_on":   row.RepeatMonthlyOn,
		"exclude_dates":       row.ExcludeDates,
	}
}
