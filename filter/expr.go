package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/rickdex/rickmorty"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.get(expression); ok {
			return cached, nil
		}
	}

	// Character fields are only known at run time
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.len()
	}
	return 0
}

// Evaluate reports whether the character matches; evaluation failures count as no match
func (f *exprFilter) Evaluate(character rickmorty.Character) bool {
	matched, err := f.Match(character)
	return err == nil && matched
}

// Match evaluates the filter and reports evaluation failures
func (f *exprFilter) Match(character rickmorty.Character) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(f.helpers, character))
	if err != nil {
		return false, &EvaluationError{
			Expression:    f.expression,
			CharacterName: character.Name,
			Reason:        "failed to evaluate expression",
			Err:           err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression:    f.expression,
			CharacterName: character.Name,
			Reason:        "expression did not return a boolean",
		}
	}
	return matched, nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helpers visible at compile time.
// Character-bound helpers get placeholders with the same signatures.
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	funcs["hasEpisode"] = func(int) bool { return false }
	funcs["statusIs"] = func(string) bool { return false }
	return funcs
}

// addHelperFunctions adds the stateless helper functions to env
func addHelperFunctions(env map[string]any) {
	env["hasSubstr"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation.
// Compile-time helpers, custom ones included, are copied first so the
// character-bound helpers and fields replace their placeholders.
func createRuntimeEnvironment(helpers map[string]any, character rickmorty.Character) map[string]any {
	env := make(map[string]any, len(helpers)+16)

	maps.Copy(env, helpers)

	episodeIDs := character.EpisodeIDs()

	env["Character"] = character
	env["hasEpisode"] = createHasEpisodeFunc(episodeIDs)
	env["statusIs"] = createStatusIsFunc(character.Status)

	env["ID"] = character.ID
	env["Name"] = character.Name
	env["Status"] = character.Status
	env["Species"] = character.Species
	env["Type"] = character.Type
	env["Gender"] = character.Gender
	env["Origin"] = character.Origin.Name
	env["Location"] = character.Location.Name
	env["EpisodeCount"] = len(character.Episode)
	env["EpisodeIDs"] = episodeIDs
	env["Created"] = character.Created

	return env
}

func createHasEpisodeFunc(episodeIDs []int) func(int) bool {
	return func(id int) bool {
		return slices.Contains(episodeIDs, id)
	}
}

func createStatusIsFunc(status string) func(string) bool {
	return func(s string) bool {
		return strings.EqualFold(status, s)
	}
}
