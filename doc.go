// Package fplot compiles expressions of one real variable and samples them
// over a grid, as a function plotter needs.
//
// The syntax is what a calculator keypad produces: "2x²+3", "√(x)",
// "sin(2x)", "e³". Normalize rewrites keypad shorthand into a canonical form
// ("2*x**2+3", "sqrt(x)"), Tokenize splits it, and Parse builds an expression
// tree that can be evaluated at any number of points without reparsing. Only
// a digit multiplies implicitly; "πx" is two operands with no operator.
//
// Evaluation keeps values as exact rationals for as long as the operations
// allow, so grid points like 0.1 or 0.3 are the exact tenths they look like.
// Where a function has no real value, such as 1/x at 0 or ln x for x ≤ 0,
// the sample is marked undefined instead of failing the whole plot.
package fplot
