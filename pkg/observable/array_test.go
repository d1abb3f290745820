package observable

import (
	"cmp"
	"reflect"
	"strings"
	"testing"
	"time"
)

// countNotifications registers a listener on a and returns a pointer to the
// number of times it has fired.
func countNotifications[T any](a *Array[T]) *int {
	n := new(int)
	a.Observe(func([]T) { *n++ })
	return n
}

func TestArrayReads(t *testing.T) {
	a := NewArray([]int{3, 1, 4, 1, 5})
	calls := countNotifications(a)

	if a.Len() != 5 {
		t.Errorf("Len = %d, want 5", a.Len())
	}
	if v, ok := a.At(2); !ok || v != 4 {
		t.Errorf("At(2) = %d, %v", v, ok)
	}
	if _, ok := a.At(5); ok {
		t.Error("At(5) should be out of range")
	}
	if _, ok := a.At(-1); ok {
		t.Error("At(-1) should be out of range")
	}
	if v, _ := a.First(); v != 3 {
		t.Errorf("First = %d, want 3", v)
	}
	if v, _ := a.Last(); v != 5 {
		t.Errorf("Last = %d, want 5", v)
	}
	if a.IndexOf(1) != 1 || a.LastIndexOf(1) != 3 || a.IndexOf(9) != -1 {
		t.Errorf("IndexOf/LastIndexOf mismatch")
	}
	if !a.Contains(4) || a.Contains(7) {
		t.Errorf("Contains mismatch")
	}
	if v, ok := a.Find(func(n int) bool { return n > 3 }); !ok || v != 4 {
		t.Errorf("Find = %d, %v", v, ok)
	}
	if got := a.Filter(func(n int) bool { return n%2 == 1 }); !reflect.DeepEqual(got, []int{3, 1, 1, 5}) {
		t.Errorf("Filter = %v", got)
	}
	if got := a.Map(func(n int) int { return n * 10 }); !reflect.DeepEqual(got, []int{30, 10, 40, 10, 50}) {
		t.Errorf("Map = %v", got)
	}
	if !a.Every(func(n int) bool { return n > 0 }) || a.Every(func(n int) bool { return n > 1 }) {
		t.Errorf("Every mismatch")
	}
	if !a.Some(func(n int) bool { return n == 5 }) || a.Some(func(n int) bool { return n > 5 }) {
		t.Errorf("Some mismatch")
	}
	if got := a.Reduce(func(acc, n int) int { return acc + n }, 0); got != 14 {
		t.Errorf("Reduce = %d, want 14", got)
	}
	if got := a.ReduceRight(func(acc, n int) int { return acc*10 + n }, 0); got != 51413 {
		t.Errorf("ReduceRight = %d, want 51413", got)
	}
	if got := a.Join("-"); got != "3-1-4-1-5" {
		t.Errorf("Join = %q", got)
	}
	if got := a.Concat([]int{9}, []int{8}); !reflect.DeepEqual(got, []int{3, 1, 4, 1, 5, 9, 8}) {
		t.Errorf("Concat = %v", got)
	}

	var visited []int
	a.Each(func(n, i int) { visited = append(visited, i) }).ForEach(func(int, int) {})
	if !reflect.DeepEqual(visited, []int{0, 1, 2, 3, 4}) {
		t.Errorf("Each visited %v", visited)
	}

	if *calls != 0 {
		t.Fatalf("expected reads not to notify, got %d", *calls)
	}
}

func TestArraySlice(t *testing.T) {
	a := NewArray([]string{"a", "b", "c", "d"})

	tests := []struct {
		start, end int
		want       []string
	}{
		{0, 2, []string{"a", "b"}},
		{1, 10, []string{"b", "c", "d"}},
		{-2, 4, []string{"c", "d"}},
		{0, -1, []string{"a", "b", "c"}},
		{3, 1, []string{}},
		{-10, 1, []string{"a"}},
	}
	for _, tt := range tests {
		if got := a.Slice(tt.start, tt.end); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Slice(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestArrayItemsIsACopy(t *testing.T) {
	a := NewArray([]int{1, 2})
	items := a.Items()
	items[0] = 99
	if v, _ := a.At(0); v != 1 {
		t.Fatalf("expected Items to return a copy, got %d", v)
	}
}

func TestArrayMutationsNotifyOnce(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Array[int])
		want   []int
	}{
		{"push", func(a *Array[int]) { a.Push(4, 5) }, []int{1, 2, 3, 4, 5}},
		{"pop", func(a *Array[int]) { a.Pop() }, []int{1, 2}},
		{"shift", func(a *Array[int]) { a.Shift() }, []int{2, 3}},
		{"unshift", func(a *Array[int]) { a.Unshift(-1, 0) }, []int{-1, 0, 1, 2, 3}},
		{"splice", func(a *Array[int]) { a.Splice(1, 1, 7, 8) }, []int{1, 7, 8, 3}},
		{"sort", func(a *Array[int]) { a.Sort(func(x, y int) int { return cmp.Compare(y, x) }) }, []int{3, 2, 1}},
		{"reverse", func(a *Array[int]) { a.Reverse() }, []int{3, 2, 1}},
		{"truncate", func(a *Array[int]) { a.SetLength(1) }, []int{1}},
		{"extend", func(a *Array[int]) { a.SetLength(5) }, []int{1, 2, 3, 0, 0}},
		{"remove", func(a *Array[int]) { a.Remove(2) }, []int{1, 3}},
		{"set", func(a *Array[int]) { a.Set([]int{9}) }, []int{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArray([]int{1, 2, 3})
			calls := countNotifications(a)

			tt.mutate(a)

			if *calls != 1 {
				t.Errorf("expected 1 notification, got %d", *calls)
			}
			if got := a.Peek(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArrayMutationResults(t *testing.T) {
	a := NewArray([]int{1, 2, 3})

	if n := a.Push(4); n != 4 {
		t.Errorf("Push returned %d, want 4", n)
	}
	if v, ok := a.Pop(); !ok || v != 4 {
		t.Errorf("Pop = %d, %v", v, ok)
	}
	if v, ok := a.Shift(); !ok || v != 1 {
		t.Errorf("Shift = %d, %v", v, ok)
	}
	if n := a.Unshift(0); n != 3 {
		t.Errorf("Unshift returned %d, want 3", n)
	}
	if got := a.Sort(cmp.Compare[int]); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Errorf("Sort returned %v", got)
	}
	if got := a.Reverse(); !reflect.DeepEqual(got, []int{3, 2, 0}) {
		t.Errorf("Reverse returned %v", got)
	}
}

func TestArraySplice(t *testing.T) {
	tests := []struct {
		name        string
		start, del  int
		items       []int
		wantRemoved []int
		wantArray   []int
	}{
		{"remove middle", 1, 2, nil, []int{2, 3}, []int{1, 4, 5}},
		{"insert only", 2, 0, []int{9}, []int{}, []int{1, 2, 9, 3, 4, 5}},
		{"negative start", -2, 1, nil, []int{4}, []int{1, 2, 3, 5}},
		{"count past end", 3, 10, nil, []int{4, 5}, []int{1, 2, 3}},
		{"start past end", 10, 1, []int{6}, []int{}, []int{1, 2, 3, 4, 5, 6}},
		{"negative count", 0, -1, []int{0}, []int{}, []int{0, 1, 2, 3, 4, 5}},
		{"replace", 0, 1, []int{7, 8}, []int{1}, []int{7, 8, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArray([]int{1, 2, 3, 4, 5})
			removed := a.Splice(tt.start, tt.del, tt.items...)
			if !reflect.DeepEqual(removed, tt.wantRemoved) {
				t.Errorf("removed %v, want %v", removed, tt.wantRemoved)
			}
			if got := a.Peek(); !reflect.DeepEqual(got, tt.wantArray) {
				t.Errorf("array %v, want %v", got, tt.wantArray)
			}
		})
	}
}

func TestArrayRemove(t *testing.T) {
	a := NewArray([]int{1, 2, 3})
	calls := countNotifications(a)

	if v, ok := a.Remove(2); !ok || v != 2 {
		t.Fatalf("Remove(2) = %d, %v", v, ok)
	}
	if !reflect.DeepEqual(a.Peek(), []int{1, 3}) {
		t.Fatalf("expected [1 3], got %v", a.Peek())
	}
	if *calls != 1 {
		t.Fatalf("expected 1 notification, got %d", *calls)
	}

	if _, ok := a.Remove(9); ok {
		t.Fatal("expected Remove(9) to report absence")
	}
	if *calls != 1 {
		t.Fatalf("expected absent Remove not to notify, got %d", *calls)
	}
}

func TestArrayEmptyPopAndShiftStillNotify(t *testing.T) {
	a := NewArray[string](nil)
	calls := countNotifications(a)

	if a.Peek() == nil {
		t.Fatal("expected nil initial slice to become empty")
	}
	if _, ok := a.Pop(); ok {
		t.Error("Pop on empty array should report false")
	}
	if _, ok := a.Shift(); ok {
		t.Error("Shift on empty array should report false")
	}
	if *calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", *calls)
	}
	if a.Len() != 0 {
		t.Fatalf("expected empty array, got %d", a.Len())
	}
}

func TestArraySetLengthNegative(t *testing.T) {
	a := NewArray([]int{1, 2})
	a.SetLength(-3)
	if a.Len() != 0 {
		t.Fatalf("expected length 0, got %d", a.Len())
	}
}

func TestArrayListenersReceiveLiveSlice(t *testing.T) {
	a := NewArray([]int{1})
	var got []int
	a.Observe(func(items []int) { got = items })

	a.Push(2)
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("expected listener to receive [1 2], got %v", got)
	}
	if !identical(got, a.Peek()) {
		t.Fatal("expected listener to receive the stored slice")
	}
}

func TestArrayReadsAreTracked(t *testing.T) {
	a := NewArray([]int{1, 2})
	size := NewComputed(func() int { return a.Len() })
	joined := NewComputed(func() string { return a.Join(",") })

	a.Push(3)
	if size.Get() != 3 {
		t.Fatalf("expected size 3, got %d", size.Get())
	}
	if joined.Get() != "1,2,3" {
		t.Fatalf("expected joined 1,2,3, got %q", joined.Get())
	}

	a.Splice(0, 2)
	if size.Get() != 1 || joined.Get() != "3" {
		t.Fatalf("expected 1 and \"3\", got %d and %q", size.Get(), joined.Get())
	}
}

func TestArrayStringDoesNotTrack(t *testing.T) {
	tr := NewTracker()
	a := NewArray([]int{1, 2}, WithTracker(tr))
	srcs := tr.Collect(func() {
		if s := a.String(); s != "Observable([1 2])" {
			t.Errorf("unexpected String: %q", s)
		}
	})
	if len(srcs) != 0 {
		t.Fatalf("expected String not to register, got %v", sourceIDs(srcs))
	}
}

func TestArrayFuncEquality(t *testing.T) {
	a := NewArrayFunc([]string{"Go", "Rust"}, strings.EqualFold)
	if a.IndexOf("go") != 0 {
		t.Fatalf("expected case-insensitive match, got %d", a.IndexOf("go"))
	}
	if _, ok := a.Remove("RUST"); !ok {
		t.Fatal("expected Remove to use the custom equality")
	}
	if a.Len() != 1 {
		t.Fatalf("expected 1 element, got %d", a.Len())
	}
	if a.Kind() != KindArray {
		t.Fatalf("expected KindArray, got %v", a.Kind())
	}
}

func TestMapToAndReduceTo(t *testing.T) {
	a := NewArray([]int{1, 2, 3})

	labels := NewComputed(func() []string {
		return MapTo(a, func(n int) string { return strings.Repeat("*", n) })
	})
	if !reflect.DeepEqual(labels.Get(), []string{"*", "**", "***"}) {
		t.Fatalf("unexpected labels: %v", labels.Get())
	}

	total := ReduceTo(a, func(acc float64, n int) float64 { return acc + float64(n)/2 }, 0)
	if total != 3 {
		t.Fatalf("expected 3, got %v", total)
	}

	a.Pop()
	if len(labels.Get()) != 2 {
		t.Fatalf("expected labels to follow the array, got %v", labels.Get())
	}
}

func TestConcatArrays(t *testing.T) {
	a := NewArray([]int{1, 2})
	b := NewArray([]int{3})
	all := ConcatArrays(a, b)

	if !reflect.DeepEqual(all.Get(), []int{1, 2, 3}) {
		t.Fatalf("unexpected concat: %v", all.Get())
	}

	b.Push(4)
	a.Shift()
	if !reflect.DeepEqual(all.Get(), []int{2, 3, 4}) {
		t.Fatalf("unexpected concat after writes: %v", all.Get())
	}

	if empty := ConcatArrays[int](); len(empty.Get()) != 0 {
		t.Fatalf("expected empty concat, got %v", empty.Get())
	}
}

func TestArraySortComparatorMayReadTheArray(t *testing.T) {
	a := NewArray([]int{3, 1, 2})
	calls := countNotifications(a)
	before := a.Peek()

	done := make(chan []int, 1)
	go func() {
		done <- a.Sort(func(x, y int) int {
			_ = a.Len()
			return x - y
		})
	}()

	select {
	case sorted := <-done:
		if !reflect.DeepEqual(sorted, []int{1, 2, 3}) {
			t.Fatalf("unexpected sort result: %v", sorted)
		}
	case <-time.After(time.Second):
		t.Fatal("Sort did not return while its comparator read the array")
	}

	if &a.Peek()[0] != &before[0] {
		t.Fatal("expected Sort to keep the live slice")
	}
	if *calls != 1 {
		t.Fatalf("expected one notification, got %d", *calls)
	}
}
