package testbed

import (
	"strconv"

	"github.com/go-probe/probe/pkg/tree"
)

// Counter is a stateful component rendering its count with an increment
// button. The initial count comes from the "initial" prop; an optional
// "onChange" prop receives each new count.
var Counter = &Component{
	Name: "Counter",
	InitialState: func(props map[string]any) map[string]any {
		n, _ := props["initial"].(int)
		return map[string]any{"count": n}
	},
	Render: func(self *Instance) *tree.Element {
		count, _ := self.State()["count"].(int)
		onChange, _ := self.Props()["onChange"].(func(int))
		return tree.New("div", map[string]any{"className": "counter"},
			tree.New("span", map[string]any{"className": "value"}, strconv.Itoa(count)),
			tree.New("button", map[string]any{
				"className": "inc",
				"onClick": func(map[string]any) {
					self.SetState(map[string]any{"count": count + 1}, nil)
					if onChange != nil {
						onChange(count + 1)
					}
				},
			}, "+"),
		)
	},
}

// Greeting renders a salutation from the rendering context, falling back
// to its "name" prop.
var Greeting = &Component{
	Name: "Greeting",
	Render: func(self *Instance) *tree.Element {
		name, _ := self.Context()["name"].(string)
		if name == "" {
			name, _ = self.Props()["name"].(string)
		}
		return tree.New("p", map[string]any{"className": "greeting"}, "Hello, ", name)
	},
}

// Nothing renders no output at all.
var Nothing = &Component{
	Name:   "Nothing",
	Render: func(*Instance) *tree.Element { return nil },
}

// ItemList is a function component rendering its "items" prop as a list.
func ItemList(props map[string]any) *tree.Element {
	items, _ := props["items"].([]string)
	children := make([]any, len(items))
	for i, item := range items {
		children[i] = tree.New("li", map[string]any{"className": "item"}, item)
	}
	return tree.New("ul", map[string]any{"className": "list"}, children...)
}
