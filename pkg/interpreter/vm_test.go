package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"alanfl/pkg/parser"
)

// run parses src and executes its `entry` function, returning everything
// written to stdout and the error Exec reported, if any.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	module, diags := parser.Parse(src)
	if !diags.Empty() {
		t.Fatalf("unexpected parse diagnostics: %s", diags.String())
	}
	var out bytes.Buffer
	vm := New(strings.NewReader(""), &out, &out)
	err := vm.Exec(module)
	return out.String(), err
}

func TestHelloArithmetic(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			print_line(3 + 4);
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureCapturesByValue(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			var x = 10;
			var f = fn [x] { print_line(x); };
			x = 20;
			f();
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "10\n" {
		t.Fatalf("got %q", out)
	}
}

func TestNestedBreakUnwindsRequestedDepth(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			var i = 0;
			while (i < 3) {
				i = i + 1;
				var j = 0;
				while (j < 3) {
					j = j + 1;
					print_line(j);
					break 2;
				}
			}
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDefaultParameter(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			var add = fn(a, b = 10) { return a + b; };
			print_line(add(5));
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "15\n" {
		t.Fatalf("got %q", out)
	}
}

func TestIntegerDecimalCoercion(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			print_line(3 + 0.5);
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "3.5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursiveFibonacci(t *testing.T) {
	// fib is not in its own capture list: a module-level name is reachable
	// from inside the function through the frame's fallback to global, so
	// recursion works once fib's own declaration has completed, without
	// needing to snapshot an as-yet-unassigned self-reference.
	out, err := run(t, `
		var fib = fn (n) {
			if (n <= 1) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		};
		var entry = fn {
			print_line(fib(10));
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStrictLogicalOperatorsEvaluateBothSides(t *testing.T) {
	out, err := run(t, `
		var sideEffect = fn [](n) {
			print_line(n);
			return true;
		};
		var entry = fn {
			false && sideEffect(1);
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "1\n" {
		t.Fatalf("expected the right operand to run even though && short-circuits in most languages, got %q", out)
	}
}

func TestTooManyArgumentsIsARuntimeError(t *testing.T) {
	_, err := run(t, `
		var entry = fn {
			var f = fn(a) { return a; };
			f(1, 2);
		};
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestCallingNonFunctionIsARuntimeError(t *testing.T) {
	_, err := run(t, `
		var entry = fn {
			var x = 1;
			x();
		};
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestMissingDefaultArgumentIsARuntimeError(t *testing.T) {
	_, err := run(t, `
		var entry = fn {
			var f = fn(a, b) { return a + b; };
			f(1);
		};
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestWhileConditionMustBeBoolean(t *testing.T) {
	_, err := run(t, `
		var entry = fn {
			while (1) {
				print_line(1);
			}
		};
	`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestSqrtIntrinsic(t *testing.T) {
	out, err := run(t, `
		var entry = fn {
			print_line(sqrt(9));
		};
	`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "3.0\n" {
		t.Fatalf("got %q", out)
	}
}
