package proforma

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ledgerline/proforma-cli/internal/model"
)

// Engine runs the full assumption-to-returns pipeline. It holds only solver
// tuning; every run is a pure function of its assumptions with no state
// carried across invocations.
type Engine struct {
	solver SolverConfig
}

// NewEngine creates an engine. Zero-valued solver fields fall back to the
// documented defaults.
func NewEngine(solver SolverConfig) *Engine {
	def := DefaultSolverConfig()
	if solver.Guess == 0 {
		solver.Guess = def.Guess
	}
	if solver.Tolerance == 0 {
		solver.Tolerance = def.Tolerance
	}
	if solver.MaxIterations == 0 {
		solver.MaxIterations = def.MaxIterations
	}
	return &Engine{solver: solver}
}

// Run validates the assumptions and executes the pipeline. Validation
// failures short-circuit before any projection work and report every
// violation at once. Numerical non-convergence does not fail the run: the
// projections and cash flows remain in the output with a nil IRR.
func (e *Engine) Run(a model.Assumptions) (*model.RunOutput, model.ValidationErrors) {
	validated, errs := Validate(a)
	if len(errs) > 0 {
		return nil, errs
	}

	if validated.ExternalOnly() {
		return e.runExternal(validated), nil
	}

	projections := Project(validated)
	schedule := Amortize(validated.LoanPrincipal(), validated.InterestRate, validated.AmortYears)

	terminalNOI := projections[len(projections)-1].NOI
	exitGross, exitNet := ExitValue(terminalNOI, validated.ExitCapRate, validated.SellingCostRatio, schedule.BalanceAt(validated.HoldYears))

	series := Aggregate(validated, projections, schedule, exitNet)

	returns := e.solveReturns(series.Floats())
	returns.EquityInvested = validated.EquityInvested()
	returns.ExitGrossValue = exitGross
	returns.ExitNetProceeds = exitNet

	totalCost := decimal.NewFromFloat(validated.TotalCost)
	returns.YieldOnCostYear1 = projections[0].NOI.Div(totalCost).InexactFloat64()
	stabYear := min(StabilizationYear(validated.RampMonths), validated.HoldYears)
	returns.YieldOnCostStabilized = projections[stabYear-1].NOI.Div(totalCost).InexactFloat64()

	cocYear := validated.CashOnCashYear
	if cocYear == 0 {
		cocYear = stabYear
	}
	returns.CashOnCashYear = cocYear
	returns.CashOnCash = CashOnCash(projections[cocYear-1].NetCashFlow, returns.EquityInvested)

	logRun(validated.PropertyName, returns)

	return &model.RunOutput{
		Projections:  projections,
		LoanSchedule: schedule,
		CashFlows:    series,
		Returns:      returns,
	}, nil
}

// runExternal solves returns directly on an externally projected series.
func (e *Engine) runExternal(a Validated) *model.RunOutput {
	series := make(model.CashFlowSeries, len(a.ExternalCashFlows))
	for i, f := range a.ExternalCashFlows {
		series[i] = decimal.NewFromFloat(f)
	}

	returns := e.solveReturns(a.ExternalCashFlows)
	if a.ExternalCashFlows[0] < 0 {
		returns.EquityInvested = series[0].Neg()
	}

	cocYear := a.CashOnCashYear
	if cocYear == 0 {
		cocYear = 1
	}
	returns.CashOnCashYear = cocYear
	if cocYear < len(series) {
		returns.CashOnCash = CashOnCash(series[cocYear], returns.EquityInvested)
	}

	logRun(a.PropertyName, returns)

	return &model.RunOutput{
		CashFlows: series,
		Returns:   returns,
	}
}

// solveReturns runs the IRR solve and series-level metrics.
func (e *Engine) solveReturns(flows []float64) model.ReturnsResult {
	var returns model.ReturnsResult
	irr, iterations, failure := SolveIRR(flows, e.solver)
	returns.Iterations = iterations
	if failure != "" {
		returns.NonConvergence = failure
	} else {
		returns.IRR = &irr
	}
	returns.EquityMultiple = EquityMultiple(flows)
	return returns
}

func logRun(property string, returns model.ReturnsResult) {
	fields := []zap.Field{
		zap.String("property", property),
		zap.Int("iterations", returns.Iterations),
		zap.Float64("equity_multiple", returns.EquityMultiple),
	}
	if returns.Converged() {
		zap.L().Debug("proforma: run complete", append(fields, zap.Float64("irr", *returns.IRR))...)
		return
	}
	zap.L().Warn("proforma: IRR did not converge", append(fields, zap.String("reason", string(returns.NonConvergence)))...)
}
