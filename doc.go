// Package calc implements a double-precision calculator that remembers its
// last result.
//
// The syntax is what you'd type into a desk calculator. "3 + 5 * 2" is 13.
// Functions apply to the term right after them, so "sqrt 16 + 3" is 7 and
// "sin pi/2" is sin(pi) divided by 2. "x log b" is the logarithm of x in base
// b, and "5!" is a factorial. Operators of equal precedence fold to the left,
// including "^".
//
// A Session remembers the result of its last successful evaluation. An
// expression that begins with an operator uses it as the left operand, so
// after "10 - 5" gives 5, "- 2" gives 3. The rest of the expression keeps
// its usual precedence, so "- 2 * 3" subtracts 6. A function with nothing
// after it applies to the last result, so "sqrt" after "- 2" gives the square
// root of 3.
//
// Every failure is a typed error carrying a Code, e.g. DivisionByZero, that
// works with errors.Is. Operations outside their domain, like the square root
// of a negative number, fail instead of producing NaN.
package calc
