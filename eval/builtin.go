package eval

import (
	"fmt"
	"math"
	"strings"
)

// builtin is one callable function: arity bounds plus the
// implementation. maxArgs of -1 means variadic.
type builtin struct {
	minArgs int
	maxArgs int
	apply   func(args []Value) (Value, error)
}

func (b *builtin) checkArity(name string, argc int) error {
	if argc < b.minArgs {
		return fmt.Errorf("%s: expects at least %d argument(s), got %d", name, b.minArgs, argc)
	}
	if b.maxArgs >= 0 && argc > b.maxArgs {
		return fmt.Errorf("%s: expects at most %d argument(s), got %d", name, b.maxArgs, argc)
	}
	return nil
}

// lookupBuiltin resolves a function name case-insensitively
func lookupBuiltin(name string) (*builtin, bool) {
	fn, known := builtins[strings.ToLower(name)]
	return fn, known
}

func unaryMath(f func(float64) float64) *builtin {
	return &builtin{
		minArgs: 1,
		maxArgs: 1,
		apply: func(args []Value) (Value, error) {
			n, err := args[0].asNumber()
			if err != nil {
				return Value{}, err
			}
			return Number(f(n)), nil
		},
	}
}

// numbersIn flattens args into a scalar list and coerces to numbers
func numbersIn(args []Value) ([]float64, error) {
	var scalars []Value
	for _, arg := range args {
		scalars = arg.flatten(scalars)
	}
	nums := make([]float64, len(scalars))
	for i, v := range scalars {
		n, err := v.asNumber()
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

var builtins = map[string]*builtin{
	// seq builds a sequence from its arguments, splicing nested
	// sequences in place. this is the call the engine's Translate
	// emits for range and union syntax.
	"seq": {
		minArgs: 0,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			var items []Value
			for _, arg := range args {
				items = arg.flatten(items)
			}
			return Sequence(items), nil
		},
	},

	"sum": {
		minArgs: 1,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			nums, err := numbersIn(args)
			if err != nil {
				return Value{}, err
			}
			total := 0.0
			for _, n := range nums {
				total += n
			}
			return Number(total), nil
		},
	},

	"mean": {
		minArgs: 1,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			nums, err := numbersIn(args)
			if err != nil {
				return Value{}, err
			}
			if len(nums) == 0 {
				return Value{}, fmt.Errorf("mean of an empty sequence")
			}
			total := 0.0
			for _, n := range nums {
				total += n
			}
			return Number(total / float64(len(nums))), nil
		},
	},

	"min": {
		minArgs: 1,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			nums, err := numbersIn(args)
			if err != nil {
				return Value{}, err
			}
			if len(nums) == 0 {
				return Value{}, fmt.Errorf("min of an empty sequence")
			}
			m := nums[0]
			for _, n := range nums[1:] {
				m = math.Min(m, n)
			}
			return Number(m), nil
		},
	},

	"max": {
		minArgs: 1,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			nums, err := numbersIn(args)
			if err != nil {
				return Value{}, err
			}
			if len(nums) == 0 {
				return Value{}, fmt.Errorf("max of an empty sequence")
			}
			m := nums[0]
			for _, n := range nums[1:] {
				m = math.Max(m, n)
			}
			return Number(m), nil
		},
	},

	"count": {
		minArgs: 0,
		maxArgs: -1,
		apply: func(args []Value) (Value, error) {
			var scalars []Value
			for _, arg := range args {
				scalars = arg.flatten(scalars)
			}
			return Number(float64(len(scalars))), nil
		},
	},

	"len": {
		minArgs: 1,
		maxArgs: 1,
		apply: func(args []Value) (Value, error) {
			switch args[0].Kind {
			case KindSequence:
				return Number(float64(len(args[0].Seq))), nil
			case KindString:
				return Number(float64(len(args[0].Str))), nil
			}
			return Value{}, fmt.Errorf("len of a %s", args[0].Kind)
		},
	},

	"pow": {
		minArgs: 2,
		maxArgs: 2,
		apply: func(args []Value) (Value, error) {
			a, err := args[0].asNumber()
			if err != nil {
				return Value{}, err
			}
			b, err := args[1].asNumber()
			if err != nil {
				return Value{}, err
			}
			return Number(math.Pow(a, b)), nil
		},
	},

	"sqrt":  unaryMath(math.Sqrt),
	"abs":   unaryMath(math.Abs),
	"floor": unaryMath(math.Floor),
	"ceil":  unaryMath(math.Ceil),
	"round": unaryMath(math.Round),
	"sin":   unaryMath(math.Sin),
	"cos":   unaryMath(math.Cos),
	"tan":   unaryMath(math.Tan),
	"log":   unaryMath(math.Log),
	"log10": unaryMath(math.Log10),
	"exp":   unaryMath(math.Exp),
}
