// Package sensitivity reruns the full pro forma pipeline over a grid of
// perturbed assumptions. Cells are independent pure computations and run on
// a bounded worker pool; a caller timeout returns whatever cells finished.
package sensitivity

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/proforma-cli/internal/model"
	"github.com/ledgerline/proforma-cli/internal/proforma"
)

// DefaultConcurrency bounds the grid worker pool when the config leaves it
// unset.
const DefaultConcurrency = 4

// Grid maps an assumption field (its JSON name) to the override values to
// sweep. The run covers the Cartesian product of all field values.
type Grid map[string][]float64

// Cells returns the number of combinations in the product.
func (g Grid) Cells() int {
	n := 1
	for _, values := range g {
		n *= len(values)
	}
	if len(g) == 0 {
		return 0
	}
	return n
}

// Runner executes sensitivity grids against an engine.
type Runner struct {
	engine      *proforma.Engine
	concurrency int
}

// NewRunner creates a Runner. Non-positive concurrency falls back to
// DefaultConcurrency.
func NewRunner(engine *proforma.Engine, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Runner{engine: engine, concurrency: concurrency}
}

// RunGrid reruns the pipeline for every combination in the grid. Each cell
// clones the base assumptions, applies its overrides and runs independently;
// a failed cell records its error and never aborts the rest. When ctx is
// cancelled mid-grid the result is marked partial and carries every cell
// that completed.
func (r *Runner) RunGrid(ctx context.Context, base model.Assumptions, grid Grid) *model.SensitivityResult {
	combos := expand(grid)
	result := &model.SensitivityResult{
		Cells: make(map[string]model.SensitivityCell, len(combos)),
	}

	zap.L().Info("sensitivity: running grid",
		zap.Int("cells", len(combos)),
		zap.Int("concurrency", r.concurrency),
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, combo := range combos {
		combo := combo
		g.Go(func() error {
			if gctx.Err() != nil {
				mu.Lock()
				result.Partial = true
				mu.Unlock()
				return nil
			}

			cell := runCell(r.engine, base, combo)
			mu.Lock()
			result.Cells[cellKey(combo)] = cell
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		result.Partial = true
	}
	return result
}

// runCell applies one override combination and runs the full pipeline.
func runCell(engine *proforma.Engine, base model.Assumptions, overrides map[string]float64) model.SensitivityCell {
	cell := model.SensitivityCell{Overrides: overrides}

	perturbed := base
	for field, value := range overrides {
		if err := applyOverride(&perturbed, field, value); err != nil {
			cell.Error = err.Error()
			return cell
		}
	}

	out, errs := engine.Run(perturbed)
	if len(errs) > 0 {
		cell.Error = errs.Error()
		return cell
	}
	cell.Returns = &out.Returns
	return cell
}

// applyOverride sets one perturbable assumption field by its JSON name.
func applyOverride(a *model.Assumptions, field string, value float64) error {
	switch field {
	case "starting_rate":
		a.StartingRate = value
	case "revenue_growth":
		a.RevenueGrowth = value
	case "expense_growth":
		a.ExpenseGrowth = value
	case "stabilized_occupancy":
		a.StabilizedOccupancy = value
	case "ramp_months":
		a.RampMonths = int(value)
	case "total_cost":
		a.TotalCost = value
	case "loan_to_cost":
		a.LoanToCost = value
	case "interest_rate":
		a.InterestRate = value
	case "exit_cap_rate":
		a.ExitCapRate = value
	case "selling_cost_ratio":
		a.SellingCostRatio = value
	case "reserve_ratio":
		a.ReserveRatio = value
	default:
		return fmt.Errorf("sensitivity: field %q is not perturbable", field)
	}
	return nil
}

// expand produces the Cartesian product of the grid in a stable order.
func expand(grid Grid) []map[string]float64 {
	fields := make([]string, 0, len(grid))
	for f := range grid {
		if len(grid[f]) > 0 {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)
	if len(fields) == 0 {
		return nil
	}

	combos := []map[string]float64{{}}
	for _, field := range fields {
		next := make([]map[string]float64, 0, len(combos)*len(grid[field]))
		for _, combo := range combos {
			for _, value := range grid[field] {
				c := make(map[string]float64, len(combo)+1)
				for k, v := range combo {
					c[k] = v
				}
				c[field] = value
				next = append(next, c)
			}
		}
		combos = next
	}
	return combos
}

// cellKey renders a stable "field=value" key for one combination.
func cellKey(overrides map[string]float64) string {
	fields := make([]string, 0, len(overrides))
	for f := range overrides {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + "=" + strconv.FormatFloat(overrides[f], 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
