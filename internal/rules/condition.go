package rules

import "encoding/binary"

type boolLit struct{ v bool }

func (e *boolLit) eval(*Scanner) value { return boolValue(e.v) }

type intLit struct{ v int64 }

func (e *intLit) eval(*Scanner) value { return intValue(e.v) }

type filesizeExpr struct{}

func (e *filesizeExpr) eval(sc *Scanner) value {
	return intValue(int64(len(sc.data)))
}

type andExpr struct{ left, right expr }

func (e *andExpr) eval(sc *Scanner) value {
	if !e.left.eval(sc).truthy() {
		return boolValue(false)
	}

	return boolValue(e.right.eval(sc).truthy())
}

type orExpr struct{ left, right expr }

func (e *orExpr) eval(sc *Scanner) value {
	if e.left.eval(sc).truthy() {
		return boolValue(true)
	}

	return boolValue(e.right.eval(sc).truthy())
}

type notExpr struct{ inner expr }

func (e *notExpr) eval(sc *Scanner) value {
	v := e.inner.eval(sc)
	if v.kind == valUndefined {
		return v
	}

	return boolValue(!v.truthy())
}

type cmpExpr struct {
	op          string
	left, right expr
}

func (e *cmpExpr) eval(sc *Scanner) value {
	l := e.left.eval(sc)
	rv := e.right.eval(sc)

	if l.kind == valUndefined || rv.kind == valUndefined {
		return value{}
	}

	a, b := l.i, rv.i
	if l.kind == valBool {
		a = boolToInt(l.b)
	}

	if rv.kind == valBool {
		b = boolToInt(rv.b)
	}

	switch e.op {
	case "==":
		return boolValue(a == b)
	case "!=":
		return boolValue(a != b)
	case "<":
		return boolValue(a < b)
	case "<=":
		return boolValue(a <= b)
	case ">":
		return boolValue(a > b)
	default:
		return boolValue(a >= b)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

type stringMatchExpr struct{ def *stringDef }

func (e *stringMatchExpr) eval(sc *Scanner) value {
	return boolValue(len(sc.matches[e.def.slot]) > 0)
}

type stringCountExpr struct{ def *stringDef }

func (e *stringCountExpr) eval(sc *Scanner) value {
	return intValue(int64(len(sc.matches[e.def.slot])))
}

type stringAtExpr struct {
	def    *stringDef
	offset expr
}

func (e *stringAtExpr) eval(sc *Scanner) value {
	off := e.offset.eval(sc)
	if off.kind != valInt {
		return value{}
	}

	for _, m := range sc.matches[e.def.slot] {
		if int64(m) == off.i {
			return boolValue(true)
		}
	}

	return boolValue(false)
}

type quantifier int

const (
	quantAll quantifier = iota
	quantAny
	quantNone
	quantCount
	quantPercent
)

type ofExpr struct {
	quant quantifier
	n     int64
	defs  []*stringDef
}

func (e *ofExpr) eval(sc *Scanner) value {
	matched := 0

	for _, def := range e.defs {
		if len(sc.matches[def.slot]) > 0 {
			matched++
		}
	}

	total := len(e.defs)

	switch e.quant {
	case quantAll:
		return boolValue(matched == total)
	case quantAny:
		return boolValue(matched > 0)
	case quantNone:
		return boolValue(matched == 0)
	case quantCount:
		return boolValue(int64(matched) >= e.n)
	default:
		return boolValue(int64(matched)*100 >= e.n*int64(total))
	}
}

type ruleRefExpr struct{ index int }

func (e *ruleRefExpr) eval(sc *Scanner) value {
	return boolValue(sc.ruleMatched[e.index])
}

type intFunc struct {
	size      int
	signed    bool
	bigEndian bool
}

var intFunctions = map[string]intFunc{
	"uint8":    {size: 1},
	"uint16":   {size: 2},
	"uint32":   {size: 4},
	"int8":     {size: 1, signed: true},
	"int16":    {size: 2, signed: true},
	"int32":    {size: 4, signed: true},
	"uint8be":  {size: 1, bigEndian: true},
	"uint16be": {size: 2, bigEndian: true},
	"uint32be": {size: 4, bigEndian: true},
	"int8be":   {size: 1, signed: true, bigEndian: true},
	"int16be":  {size: 2, signed: true, bigEndian: true},
	"int32be":  {size: 4, signed: true, bigEndian: true},
}

type intFuncExpr struct {
	fn     intFunc
	offset expr
}

func (e *intFuncExpr) eval(sc *Scanner) value {
	off := e.offset.eval(sc)
	if off.kind != valInt || off.i < 0 || off.i+int64(e.fn.size) > int64(len(sc.data)) {
		return value{}
	}

	buf := sc.data[off.i : off.i+int64(e.fn.size)]

	var order binary.ByteOrder = binary.LittleEndian
	if e.fn.bigEndian {
		order = binary.BigEndian
	}

	switch e.fn.size {
	case 1:
		if e.fn.signed {
			return intValue(int64(int8(buf[0])))
		}

		return intValue(int64(buf[0]))
	case 2:
		v := order.Uint16(buf)
		if e.fn.signed {
			return intValue(int64(int16(v)))
		}

		return intValue(int64(v))
	default:
		v := order.Uint32(buf)
		if e.fn.signed {
			return intValue(int64(int32(v)))
		}

		return intValue(int64(v))
	}
}
