package tans

import (
	"fmt"
	"math/big"
)

func Example() {
	const sample = "Hello"
	tbl, err := Train([][]byte{[]byte(sample)})
	if err != nil {
		panic(err)
	}
	key, err := tbl.EncodeString(sample)
	if err != nil {
		panic(err)
	}
	decoded, err := tbl.Decode(key)
	if err != nil {
		panic(err)
	}
	fmt.Println("encoded:", key)
	fmt.Println("decoded:", string(decoded))
	// Output:
	// encoded: 454
	// decoded: Hello
}

func ExampleTable_Node() {
	tbl, err := BuildTable([]Frequency{{Symbol: 'a', Count: 2}, {Symbol: 'b', Count: 1}}, 3)
	if err != nil {
		panic(err)
	}
	for k := int64(0); k < 4; k++ {
		n, err := tbl.Node(big.NewInt(k))
		if err != nil {
			panic(err)
		}
		if n.IsRoot() {
			fmt.Printf("key %d: root, children %v\n", k, n.Children)
			continue
		}
		fmt.Printf("key %d: parent %s + %q, children %v\n", k, n.Parent, n.Symbol, n.Children)
	}
	// Output:
	// key 0: root, children [1 2]
	// key 1: parent 0 + 'a', children [3 5]
	// key 2: parent 0 + 'b', children [4 8]
	// key 3: parent 1 + 'a', children [6 11]
}
