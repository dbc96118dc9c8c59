// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatRatio renders an odds ratio with two decimals, or "inf" for the
// unbounded sentinel.
func FormatRatio(x float64) string {
	if math.IsInf(x, 1) {
		return "inf"
	}

	return strconv.FormatFloat(x, 'f', 2, 64)
}

// FormatPValue renders a p-value with 12 significant digits.
func FormatPValue(p float64) string {
	return strconv.FormatFloat(p, 'g', 12, 64)
}

// FormatLatex renders x as "m \cdot 10^{ ±e }" with prec mantissa decimals and
// expDigits exponent digits (sign excluded), e.g. 1.23 \cdot 10^{ -05 }.
func FormatLatex(x float64, prec, expDigits int) string {
	s := strconv.FormatFloat(x, 'e', prec, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}

	return fmt.Sprintf("%s \\cdot 10^{ %+0*d }", mantissa, expDigits+1, e)
}

// joinLabels renders labels as "[a, b, c]".
func joinLabels(labels []string) string {
	return "[" + strings.Join(labels, ", ") + "]"
}
