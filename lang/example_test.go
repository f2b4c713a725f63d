package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/modulista/lang"
)

func ExampleParse() {
	obj, err := lang.Parse(`{ name: "John" age: 30 friend: name }`)
	if err != nil {
		fmt.Println(err)

		return
	}

	_ = obj.FormatJSON(context.Background(), os.Stdout, 0)

	// Output:
	// {"name":"John","age":30,"friend":{"type":"reference","name":"name"}}
}

func ExampleParse_error() {
	_, err := lang.Parse("{\n  a: @2\n}")
	fmt.Println(err)

	// Output:
	// Invalid boolean at line 2, col 7
}

func ExampleExecute() {
	tree := lang.Tree{
		"/": {
			{Path: "/", Name: "user", Type: lang.TypeList},
			{Path: "/", Name: "total", Type: lang.TypeSum},
		},
		"/user/": {
			{Path: "/user/", Name: "age", Type: lang.TypeNumber, Value: 30.0},
		},
		"/total/": {
			{Path: "/total/", Name: "a", Type: lang.TypeNumber, Value: 10.0},
			{Path: "/total/", Name: "b", Type: lang.TypeNumber, Value: 5.0},
		},
	}

	plan := lang.Stringify(tree["/"], "/", 1)

	out, err := lang.Execute(context.Background(), plan, tree)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(out)

	// Output:
	// {
	//   user: {
	//     age: 30
	//   }
	//   total: 10 + 5
	// }
}
