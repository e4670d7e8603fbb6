package xl

import (
	"strings"

	"github.com/xuri/efp"
)

// Functions added after Excel 2007 are stored with a prefix. Excel shows
// #NAME? for them when the prefix is missing.
var futureFunctions = map[string]string{}

func init() {
	for _, fn := range strings.Fields(`
		ACOT ACOTH AGGREGATE ARABIC BASE BETA.DIST BETA.INV BINOM.DIST
		BINOM.DIST.RANGE BINOM.INV BITAND BITLSHIFT BITOR BITRSHIFT BITXOR
		CEILING.MATH CEILING.PRECISE CHISQ.DIST CHISQ.DIST.RT CHISQ.INV
		CHISQ.INV.RT CHISQ.TEST COMBINA CONCAT CONFIDENCE.NORM CONFIDENCE.T
		COT COTH COVARIANCE.P COVARIANCE.S CSC CSCH DAYS DECIMAL ERF.PRECISE
		ERFC.PRECISE EXPON.DIST F.DIST F.DIST.RT F.INV F.INV.RT F.TEST
		FILTERXML FLOOR.MATH FLOOR.PRECISE FORECAST.ETS FORECAST.ETS.CONFINT
		FORECAST.ETS.SEASONALITY FORECAST.ETS.STAT FORECAST.LINEAR FORMULATEXT
		GAMMA GAMMA.DIST GAMMA.INV GAMMALN.PRECISE GAUSS HYPGEOM.DIST IFNA IFS
		IMCOSH IMCOT IMCSC IMCSCH IMSEC IMSECH IMSINH IMTAN ISFORMULA
		ISOWEEKNUM LOGNORM.DIST LOGNORM.INV MAXIFS MINIFS MODE.MULT MODE.SNGL
		MUNIT NEGBINOM.DIST NORM.DIST NORM.INV NORM.S.DIST NORM.S.INV
		NUMBERVALUE PDURATION PERCENTILE.EXC PERCENTILE.INC PERCENTRANK.EXC
		PERCENTRANK.INC PERMUTATIONA PHI POISSON.DIST QUARTILE.EXC
		QUARTILE.INC QUERYSTRING RANK.AVG RANK.EQ RRI SEC SECH SHEET SHEETS
		SKEW.P STDEV.P STDEV.S SWITCH T.DIST T.DIST.2T T.DIST.RT T.INV
		T.INV.2T T.TEST TEXTJOIN UNICHAR UNICODE VAR.P VAR.S WEBSERVICE
		WEIBULL.DIST XOR Z.TEST
		ANCHORARRAY ARRAYTOTEXT BYCOL BYROW CHOOSECOLS CHOOSEROWS DROP EXPAND
		HSTACK ISOMITTED LAMBDA LET MAKEARRAY MAP RANDARRAY REDUCE SCAN
		SEQUENCE SINGLE SORTBY TAKE TEXTAFTER TEXTBEFORE TEXTSPLIT TOCOL TOROW
		UNIQUE VALUETOTEXT VSTACK WRAPCOLS WRAPROWS XLOOKUP XMATCH`) {
		futureFunctions[fn] = "_xlfn."
	}
	futureFunctions["FILTER"] = "_xlfn._xlws."
	futureFunctions["SORT"] = "_xlfn._xlws."
}

// expandFutureFunctions prefixes calls to future functions. Formulas that
// already carry a prefix are left alone.
func expandFutureFunctions(formula string) string {
	if strings.Contains(formula, "_xlfn.") {
		return formula
	}
	ps := efp.ExcelParser()
	calls := map[string]bool{}
	for _, t := range ps.Parse("=" + formula) {
		if t.TType != efp.TokenTypeFunction || t.TSubType != efp.TokenSubTypeStart {
			continue
		}
		name := strings.ToUpper(t.TValue)
		if _, ok := futureFunctions[name]; ok {
			calls[name] = true
		}
	}
	if len(calls) == 0 {
		return formula
	}

	var b strings.Builder
	b.Grow(len(formula) + 8*len(calls))
	for i := 0; i < len(formula); {
		c := formula[i]
		switch {
		case c == '"' || c == '\'':
			// string literal or quoted sheet name
			j := i + 1
			for j < len(formula) {
				if formula[j] == c {
					if j+1 < len(formula) && formula[j+1] == c {
						j += 2
						continue
					}
					break
				}
				j++
			}
			j = min(j+1, len(formula))
			b.WriteString(formula[i:j])
			i = j
		case isIdentStart(c) && (i == 0 || !isIdentChar(formula[i-1])):
			j := i + 1
			for j < len(formula) && isIdentChar(formula[j]) {
				j++
			}
			name := strings.ToUpper(formula[i:j])
			if j < len(formula) && formula[j] == '(' && calls[name] {
				b.WriteString(futureFunctions[name])
			}
			b.WriteString(formula[i:j])
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isIdentStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '.'
}
