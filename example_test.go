package slotvec_test

import (
	"fmt"
	"slices"

	"github.com/hupe1980/slotvec"
)

func Example() {
	v := slotvec.New[string]()
	v.Insert("a")
	b := v.Insert("b")
	v.Insert("c")

	v.Remove(b)
	fmt.Println(v.Insert("d"))

	for i, s := range v.All() {
		fmt.Println(i, s)
	}
	// Output:
	// 1
	// 0 a
	// 1 d
	// 2 c
}

func ExampleVector_Get() {
	v := slotvec.Collect(slices.Values([]int{10, 20}))
	v.Remove(0)

	_, ok := v.Get(0)
	fmt.Println(ok)

	x, ok := v.Get(1)
	fmt.Println(x, ok)

	_, ok = v.Get(9)
	fmt.Println(ok)
	// Output:
	// false
	// 20 true
	// false
}

func ExampleVector_MustGet() {
	v := slotvec.New[string]()
	v.Insert("only")

	defer func() {
		fmt.Println(recover())
	}()
	v.MustGet(3)
	// Output: slotvec: index 3 out of range [0:1]
}

func ExampleWithReusePolicy() {
	lowest := slotvec.New[int]()
	stack := slotvec.New[int](slotvec.WithReusePolicy(slotvec.LastFreed))

	for _, v := range []*slotvec.Vector[int]{lowest, stack} {
		for i := range 4 {
			v.Insert(i)
		}
		v.Remove(1)
		v.Remove(3)
		fmt.Println(v.Policy(), v.Insert(9))
	}
	// Output:
	// lowest-index 1
	// last-freed 3
}

func ExampleVector_String() {
	v := slotvec.Collect(slices.Values([]string{"a", "b", "c"}))
	v.Remove(1)
	fmt.Println(v)
	// Output: {0:a 2:c}
}
