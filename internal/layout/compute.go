package layout

import (
	"fortio.org/safecast"

	"plcc/internal/typesystem"
)

func (e *LayoutEngine) computeLayout(dt *typesystem.DataType, state *layoutState) (TypeLayout, *LayoutError) {
	switch dt.Info.Kind {
	case typesystem.KindVoid:
		return TypeLayout{Size: 0, Align: 1}, nil

	case typesystem.KindBool:
		return TypeLayout{Size: 1, Align: 1}, nil

	case typesystem.KindInt, typesystem.KindFloat:
		return scalarLayoutBytes(int(dt.Info.Size) / 8), nil

	case typesystem.KindString:
		// [capacity+1 x i8], the extra byte holds the terminator
		n, err := safecast.Conv[int](dt.Info.Capacity + 1)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrLengthConversion, Type: dt.Name, Err: err}
		}
		return TypeLayout{Size: n, Align: 1}, nil

	case typesystem.KindArray:
		return e.arrayFixedLayout(dt, state)

	case typesystem.KindStruct:
		return e.structLayout(dt, state)

	default:
		return TypeLayout{Size: 0, Align: 1}, nil
	}
}

func scalarLayoutBytes(size int) TypeLayout {
	if size <= 0 {
		return TypeLayout{Size: 0, Align: 1}
	}
	return TypeLayout{Size: size, Align: size}
}

func roundUp(n, align int) int {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}

func (e *LayoutEngine) arrayFixedLayout(dt *typesystem.DataType, state *layoutState) (TypeLayout, *LayoutError) {
	length := dt.Len()
	if length < 0 {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrNegativeLength, Type: dt.Name, Value: length}
	}
	elemLayout, err := e.layoutOf(dt.Info.Inner, state)
	if err != nil {
		return TypeLayout{Size: 0, Align: 1}, err
	}
	elemAlign := max(elemLayout.Align, 1)
	stride := roundUp(elemLayout.Size, elemAlign)
	n, convErr := safecast.Conv[int](length)
	if convErr != nil {
		return TypeLayout{Size: 0, Align: 1}, &LayoutError{Kind: LayoutErrLengthConversion, Type: dt.Name, Err: convErr}
	}
	return TypeLayout{Size: stride * n, Align: elemAlign}, nil
}

func (e *LayoutEngine) structLayout(dt *typesystem.DataType, state *layoutState) (TypeLayout, *LayoutError) {
	fields := dt.Info.Members
	if len(fields) == 0 {
		return TypeLayout{Size: 0, Align: 1}, nil
	}
	offsets := make([]int, len(fields))
	aligns := make([]int, len(fields))

	size := 0
	align := 1
	for i := range fields {
		fl, err := e.layoutOf(fields[i].TypeName, state)
		if err != nil {
			return TypeLayout{Size: 0, Align: 1}, err
		}
		fAlign := max(fl.Align, 1)
		size = roundUp(size, fAlign)
		offsets[i] = size
		aligns[i] = fAlign
		size += fl.Size
		align = max(align, fAlign)
	}
	size = roundUp(size, align)
	return TypeLayout{
		Size:         size,
		Align:        align,
		FieldOffsets: offsets,
		FieldAligns:  aligns,
	}, nil
}
