package lisptest

import (
	"testing"

	"github.com/luthersystems/tlisp/lisp"
)

func TestLiterals(t *testing.T) {
	tests := TestSuite{
		{"self evaluating", TestSequence{
			{"3", "3", ""},
			{"-3", "-3", ""},
			{"'hello'", "'hello'", ""},
			{"''", "''", ""},
			{"true", "true", ""},
			{"false", "false", ""},
			{"nil", "nil", ""},
			{"+", "<builtin:+>", ""},
			{"(fun* () 1)", "<function>", ""},
		}},
		{"symbols", TestSequence{
			{"a", "unbound symbol: a", ""},
			{"(def! a 1)", "1", ""},
			{"a", "1", ""},
		}},
		{"empty list", TestSequence{
			{"()", "input:1:1: empty list is not callable", ""},
			{"(list)", "()", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestArithmetic(t *testing.T) {
	tests := TestSuite{
		{"integers", TestSequence{
			{"(+ 1 2)", "3", ""},
			{"(- 1 2)", "-1", ""},
			{"(* 6 7)", "42", ""},
			{"(/ 7 2)", "3", ""},
			{"(/ -7 2)", "-3", ""},
			{"(+ 1 (* 2 3))", "7", ""},
			{"(+ 9223372036854775807 1)", "-9223372036854775808", ""},
		}},
		{"type mismatch", TestSequence{
			{"(+ 1 'x')", "type mismatch: expected Integer at argument position 2 of + but got 'x'", ""},
			{"(- true 1)", "type mismatch: expected Integer at argument position 1 of - but got true", ""},
			{"(* nil nil)", "type mismatch: expected Integer at argument position 2 of * but got nil", ""},
			{"(+ 'a' 'b')", "type mismatch: expected Integer at argument position 2 of + but got 'b'", ""},
		}},
		{"division by zero", TestSequence{
			{"(/ 1 0)", "division-by-zero: /: division by zero", ""},
		}},
		{"arity", TestSequence{
			{"(+ 1 2 3)", "+: expected 2 arguments (got 3)", ""},
			{"(list? 1 2)", "list?: expected 1 argument (got 2)", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestComparison(t *testing.T) {
	tests := TestSuite{
		{"equality", TestSequence{
			{"(= 1 1)", "true", ""},
			{"(= 1 2)", "false", ""},
			{"(= 'a' 'a')", "true", ""},
			{"(= 1 '1')", "false", ""},
			{"(= nil nil)", "true", ""},
			{"(= nil false)", "false", ""},
			{"(= (list 1 (list 2)) (list 1 (list 2)))", "true", ""},
			{"(= (list 1 2) (list 1))", "false", ""},
			{"(= + +)", "true", ""},
			{"(def! a (atom 1))", "(atom 1)", ""},
			{"(= a a)", "true", ""},
			{"(= a (atom 1))", "false", ""},
		}},
		{"ordering", TestSequence{
			{"(< 1 2)", "true", ""},
			{"(< 2 1)", "false", ""},
			{"(< 1 1)", "false", ""},
			{"(< 1 'b')", "false", ""},
			{"(< 'a' 'b')", "false", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestLists(t *testing.T) {
	tests := TestSuite{
		{"lists", TestSequence{
			{"(list 1 'a' (list))", "(1 'a' ())", ""},
			{"(list? (list))", "true", ""},
			{"(list? nil)", "false", ""},
			{"(empty? (list))", "true", ""},
			{"(empty? (list 1))", "false", ""},
			{"(empty? nil)", "false", ""},
			{"(count (list 1 2 3))", "3", ""},
			{"(count 'abc')", "0", ""},
			{"(count nil)", "0", ""},
		}},
		{"strings", TestSequence{
			{"(str)", "''", ""},
			{"(str 'a' 'b c' '')", "'ab c'", ""},
			{"(str 'a' 1)", "type mismatch: expected String at argument position 2 of str but got 1", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestSpecialOps(t *testing.T) {
	tests := TestSuite{
		{"if truthiness", TestSequence{
			{"(if 0 't' 'f')", "'t'", ""},
			{"(if nil 't' 'f')", "'t'", ""},
			{"(if (list) 't' 'f')", "'t'", ""},
			{"(if false 't' 'f')", "'f'", ""},
			{"(if false 't')", "nil", ""},
			{"(if true (prn 1) (prn 2))", "nil", "1\n"},
		}},
		{"do", TestSequence{
			{"(do)", "nil", ""},
			{"(do (prn 1) (prn 2) 3)", "3", "1\n2\n"},
			{"(do (def! x 1) (def! y (+ x 1)) y)", "2", ""},
			{"x", "1", ""},
		}},
		{"def!", TestSequence{
			{"(def! x (+ 1 2))", "3", ""},
			{"(def! x (+ x 1))", "4", ""},
			{"x", "4", ""},
			{"(def! if 1)", "1", ""},
			{"(if true 'special' 'form')", "'special'", ""},
			{"(def! y zzz)", "unbound symbol: zzz", ""},
			{"y", "unbound symbol: y", ""},
		}},
		{"eval", TestSequence{
			{"(eval (list + 1 2))", "3", ""},
			{"(eval (read-str '(* 6 7)'))", "42", ""},
			{"(def! x 1)", "1", ""},
			{"(let* (x 2) (eval (read-str 'x')))", "1", ""},
			{"(eval 5)", "5", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestScope(t *testing.T) {
	tests := TestSuite{
		{"lexical scope", TestSequence{
			{"(let* (x 1) x)", "1", ""},
			{"x", "unbound symbol: x", ""},
			{"(def! f (let* (x 1) (fun* () x)))", "<function>", ""},
			{"(f)", "1", ""},
			{"(def! x 2)", "2", ""},
			{"(f)", "1", ""},
			{"(((fun* (x) (fun* () (+ x 2))) 3))", "5", ""},
		}},
		{"shadowing", TestSequence{
			{"(def! x 1)", "1", ""},
			{"(let* (x 2) x)", "2", ""},
			{"((fun* (x) x) 3)", "3", ""},
			{"x", "1", ""},
			{"(let* (y 1) (def! z y))", "1", ""},
			{"z", "unbound symbol: z", ""},
		}},
		{"let* sequential", TestSequence{
			{"(let* (a 1 b (+ a 1)) b)", "2", ""},
			{"(let* (a 1 a (+ a 1)) a)", "2", ""},
			{"(let* () 3)", "3", ""},
			{"(let* (a) a)", "input:1:1: let*: binding list has an odd number of elements: 1", ""},
			{"(let* (1 2) 3)", "input:1:1: let*: expected a symbol but got 1", ""},
		}},
		{"letrec", TestSequence{
			{"(letrec (f (fun* (n) (if (= n 0) 1 (f (- n 1))))) (f 3))", "1", ""},
			{`(letrec (even? (fun* (n) (if (= n 0) true (odd? (- n 1))))
			           odd? (fun* (n) (if (= n 0) false (even? (- n 1)))))
				(even? 10))`, "true", ""},
		}},
		{"closures", TestSequence{
			{"(def! adder (fun* (n) (fun* (x) (+ x n))))", "<function>", ""},
			{"(def! add5 (adder 5))", "<function>", ""},
			{"(add5 10)", "15", ""},
			{"((adder 1) 1)", "2", ""},
			{"(fun* (1) 1)", "input:1:1: fun*: expected a symbol but got 1", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestAtoms(t *testing.T) {
	tests := TestSuite{
		{"atom mutation", TestSequence{
			{"(def! a (atom 5))", "(atom 5)", ""},
			{"(atom? a)", "true", ""},
			{"(atom? 5)", "false", ""},
			{"(deref a)", "5", ""},
			{"(swap! a (fun* (x) (+ x 1)))", "(atom 6)", ""},
			{"(deref a)", "6", ""},
			{"(reset! a 0)", "0", ""},
			{"(deref a)", "0", ""},
		}},
		{"shared cells", TestSequence{
			{"(def! a (atom 0))", "(atom 0)", ""},
			{"(def! inc! (fun* () (swap! a (fun* (x) (+ x 1)))))", "<function>", ""},
			{"(do (inc!) (inc!) (inc!) (deref a))", "3", ""},
			{"(def! b a)", "(atom 3)", ""},
			{"(reset! b 10)", "10", ""},
			{"(deref a)", "10", ""},
		}},
		{"swap! with builtins", TestSequence{
			{"(def! a (atom (list 1 2)))", "(atom (1 2))", ""},
			{"(swap! a count)", "(atom 2)", ""},
			{"(swap! a +)", "+: expected 2 arguments (got 1)", ""},
			{"(deref a)", "2", ""},
		}},
		{"self-referential atoms", TestSequence{
			{"(def! a (atom 1))", "(atom 1)", ""},
			{"(do (reset! a a) 1)", "1", ""},
			{"a", "(atom (atom ...))", ""},
			{"(reset! a a)", "(atom (atom ...))", ""},
			{"(prn a)", "nil", "(atom (atom ...))\n"},
			{"(+ 1 a)", "type mismatch: expected Integer at argument position 2 of + but got (atom (atom ...))", ""},
			{"(def! b (atom 2))", "(atom 2)", ""},
			{"(reset! a (list b b a))", "((atom 2) (atom 2) (atom ((atom 2) (atom 2) (atom ...))))", ""},
			{"a", "(atom ((atom 2) (atom 2) (atom ...)))", ""},
		}},
		{"atom type errors", TestSequence{
			{"(deref 1)", "type mismatch: expected Atom at argument position 1 of deref but got 1", ""},
			{"(reset! 1 2)", "type mismatch: expected Atom at argument position 1 of reset! but got 1", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestTailCalls(t *testing.T) {
	tests := TestSuite{
		{"loop", TestSequence{
			{"(def! loop (fun* (n) (if (= n 0) 0 (loop (- n 1)))))", "<function>", ""},
			{"(loop 1000000)", "0", ""},
		}},
		{"accumulator", TestSequence{
			{"(def! sum (fun* (n acc) (if (= n 0) acc (sum (- n 1) (+ acc n)))))", "<function>", ""},
			{"(sum 100000 0)", "5000050000", ""},
		}},
	}
	RunTestSuite(t, tests)
}

func TestArity(t *testing.T) {
	strict := TestSuite{
		{"strict", TestSequence{
			{"(def! f (fun* (a b) a))", "<function>", ""},
			{"(f 1)", "f: expected 2 arguments (got 1)", ""},
			{"(f 1 2 3)", "f: expected 2 arguments (got 3)", ""},
			{"(f 1 2)", "1", ""},
		}},
	}
	RunTestSuite(t, strict)

	lenient := TestSuite{
		{"lenient", TestSequence{
			{"(def! f (fun* (a b) a))", "<function>", ""},
			{"(f 1)", "1", ""},
			{"(f 1 2 3)", "1", ""},
			{"((fun* (a b) b) 1)", "unbound symbol: b", ""},
		}},
	}
	r := &Runner{Config: []lisp.Config{lisp.WithLenientArity()}}
	r.RunTestSuite(t, lenient)
}

func TestStackOverflow(t *testing.T) {
	tests := TestSuite{
		{"non-tail recursion", TestSequence{
			{"(def! sum (fun* (n) (if (= n 0) 0 (+ n (sum (- n 1))))))", "<function>", ""},
			{"(sum 100)", "5050", ""},
			{"(sum 1000)", "maximum stack height exceeded: 201", ""},
			{"(sum 10)", "55", ""},
		}},
	}
	r := &Runner{Config: []lisp.Config{lisp.WithMaximumStackHeight(200)}}
	r.RunTestSuite(t, tests)
}

func TestRunTestFile(t *testing.T) {
	(&Runner{}).RunTestFile(t, "testdata/basic.tl")
}
