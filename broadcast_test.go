/*
Copyright © 2026 the geocol authors.
This file is part of geocol.

geocol is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geocol is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geocol.  If not, see <http://www.gnu.org/licenses/>.
*/

package geocol

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func double(v int) (int, error) { return 2 * v, nil }

func TestBroadcastLen(t *testing.T) {
	tests := []struct {
		lengths []int
		want    int
		err     bool
	}{
		{lengths: []int{5, 1}, want: 5},
		{lengths: []int{1, 5}, want: 5},
		{lengths: []int{1, 1}, want: 1},
		{lengths: []int{4, 4, 1}, want: 4},
		{lengths: []int{0, 1}, want: 0},
		{lengths: []int{0, 0, 1}, want: 0},
		{lengths: []int{5, 3}, err: true},
		{lengths: []int{0, 3}, err: true},
		{lengths: []int{2, 1, 3}, err: true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprint(test.lengths), func(t *testing.T) {
			n, err := broadcastLen(test.lengths...)
			if test.err {
				if !errors.Is(err, ErrShapeMismatch) {
					t.Fatalf("want shape mismatch but have %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n != test.want {
				t.Errorf("want %d but have %d", test.want, n)
			}
		})
	}
}

func TestApply2Broadcast(t *testing.T) {
	a := ColumnOf(1, 2, 3, 4, 5)
	b := ColumnOf(10)
	o, err := Apply2(a, b, func(a, b int) (int, error) { return a + b, nil })
	if err != nil {
		t.Fatal(err)
	}
	want := ColumnOf(11, 12, 13, 14, 15)
	if !reflect.DeepEqual(want, o) {
		t.Errorf("want %v but have %v", want, o)
	}

	// The scalar may be on either side.
	o, err = Apply2(b, a, func(a, b int) (int, error) { return a - b, nil })
	if err != nil {
		t.Fatal(err)
	}
	want = ColumnOf(9, 8, 7, 6, 5)
	if !reflect.DeepEqual(want, o) {
		t.Errorf("want %v but have %v", want, o)
	}
}

func TestApply2ShapeMismatch(t *testing.T) {
	var calls int
	o, err := Apply2(ColumnOf(1, 2, 3, 4, 5), ColumnOf(1, 2, 3), func(a, b int) (int, error) {
		calls++
		return a + b, nil
	})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("want shape mismatch but have %v", err)
	}
	var se *ShapeError
	if !errors.As(err, &se) || !reflect.DeepEqual(se.Lengths, []int{5, 3}) {
		t.Errorf("want lengths [5 3] in %v", err)
	}
	if calls != 0 {
		t.Errorf("row function called %d times", calls)
	}
	if o != nil {
		t.Errorf("want no output but have %v", o)
	}
}

func TestApply1NullSkipsRow(t *testing.T) {
	in := ColumnOf(1, 2, 3, 4, 5)
	in[2] = Null[int]()
	var seen []int
	o, err := Apply1(in, func(v int) (int, error) {
		seen = append(seen, v)
		return v * 2, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seen, []int{1, 2, 4, 5}) {
		t.Errorf("row function saw %v", seen)
	}
	want := ColumnOf(2, 4, 0, 8, 10)
	want[2] = Null[int]()
	if !reflect.DeepEqual(want, o) {
		t.Errorf("want %v but have %v", want, o)
	}
	if o.NullCount() != 1 {
		t.Errorf("want 1 null but have %d", o.NullCount())
	}
}

func TestApplyNullInAnyInput(t *testing.T) {
	a := ColumnOf(1, 2, 3)
	b := ColumnOf(1, 2, 3)
	c := Column[int]{Null[int]()}
	var calls int
	o, err := Apply3(a, b, c, func(a, b, c int) (int, error) {
		calls++
		return a + b + c, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 0 || len(o) != 3 || o.NullCount() != 3 {
		t.Errorf("want 3 nulls and no calls, have %v after %d calls", o, calls)
	}
}

func TestApplyRowErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	o, err := Apply1(ColumnOf(0, 1, 2, 3, 4), func(v int) (int, error) {
		calls++
		if v == 3 {
			return 0, boom
		}
		return v, nil
	})
	var re *RowError
	if !errors.As(err, &re) || re.Row != 3 || !errors.Is(err, boom) {
		t.Fatalf("want row 3 error but have %v", err)
	}
	if o != nil {
		t.Errorf("want no partial output but have %v", o)
	}
	if calls != 4 {
		t.Errorf("want 4 calls but have %d", calls)
	}
}

func TestApplyUnsupportedIsNull(t *testing.T) {
	o, err := Apply1(ColumnOf(1, 2, 3), func(v int) (int, error) {
		if v == 2 {
			return 0, fmt.Errorf("%w: no such part", ErrUnsupportedForGeometryKind)
		}
		return v, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Column[int]{Some(1), Null[int](), Some(3)}
	if !reflect.DeepEqual(want, o) {
		t.Errorf("want %v but have %v", want, o)
	}
}

func TestApplyEmpty(t *testing.T) {
	o, err := Apply1(Column[int]{}, double)
	if err != nil || len(o) != 0 {
		t.Errorf("want empty output, have %v, %v", o, err)
	}
	o, err = Apply2(Column[int]{}, ColumnOf(1), func(a, b int) (int, error) { return a + b, nil })
	if err != nil || len(o) != 0 {
		t.Errorf("want empty output, have %v, %v", o, err)
	}
}
