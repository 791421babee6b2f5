package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraversePreorder(t *testing.T) {
	var got []string
	_, err := Traverse("a + b;", func(n Node) bool {
		got = append(got, n.Type().String())
		return true
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Program", "ExpressionStatement", "BinaryExpression", "Identifier", "Identifier"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("visit order mismatch (-want +got):\n%s", diff)
	}
}

func TestTraversePrune(t *testing.T) {
	src := "function f(x) { return x } var y = f(1);"
	var names []string
	_, err := Traverse(src, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		_, isFunc := n.(*FunctionDeclaration)
		return !isFunc
	})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"y", "f"}, names); diff != "" {
		t.Errorf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseVisitsEveryNode(t *testing.T) {
	counts := map[NodeType]int{}
	prog, err := Traverse(corpus, func(n Node) bool {
		counts[n.Type()]++
		return true
	}, WithRange())
	if err != nil {
		t.Fatal(err)
	}
	if prog == nil {
		t.Fatal("Traverse returned no program")
	}

	for _, typ := range []NodeType{
		NodeProgram, NodeVariableDeclaration, NodeFunctionDeclaration, NodeReturnStatement,
		NodeLabeledStatement, NodeForInStatement, NodeContinueStatement, NodeBreakStatement,
		NodeObjectExpression, NodeProperty, NodeTryStatement, NodeCatchClause, NodeThrowStatement,
		NodeSwitchStatement, NodeSwitchCase, NodeDoWhileStatement, NodeNewExpression,
		NodeMemberExpression, NodeArrayExpression, NodeUpdateExpression, NodeLiteral,
	} {
		if counts[typ] == 0 {
			t.Errorf("no %v visited", typ)
		}
	}
	if counts[NodeSwitchCase] != 2 {
		t.Errorf("visited %d switch cases, want 2", counts[NodeSwitchCase])
	}
}

func TestTraverseError(t *testing.T) {
	called := false
	prog, err := Traverse("var = 1", func(Node) bool {
		called = true
		return true
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if prog != nil || called {
		t.Error("visitor ran or program returned for a failed parse")
	}
}

func TestChildrenSkipsAbsentNodes(t *testing.T) {
	prog := mustParse(t, "for (;;) { break }")
	loop := prog.Body[0].(*ForStatement)
	children := Children(loop)
	if len(children) != 1 {
		t.Fatalf("got %d children, want 1", len(children))
	}
	brk := children[0].(*BlockStatement).Body[0]
	if len(Children(brk)) != 0 {
		t.Errorf("break without label has children: %v", Children(brk))
	}
}

func TestNodeTypeString(t *testing.T) {
	if got := NodeMemberExpression.String(); got != "MemberExpression" {
		t.Errorf("String() = %q", got)
	}
	if got := NodeType(0).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}
