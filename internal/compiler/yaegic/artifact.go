package yaegic

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"

	"github.com/traefik/yaegi/interp"

	"goscript/internal/compiler"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

type artifact struct {
	types []*scriptType
}

func (a *artifact) Types() []compiler.Type {
	out := make([]compiler.Type, len(a.types))
	for i, t := range a.types {
		out[i] = t
	}
	return out
}

// adopt hands the live interpreter to every method so Bind can evaluate
// method-value expressions against the compiled declarations.
func (a *artifact) adopt(i *interp.Interpreter) {
	for _, t := range a.types {
		for _, m := range t.methods {
			m.interp = i
		}
	}
}

type scriptType struct {
	name    string
	class   bool
	methods []*scriptMethod
}

func (t *scriptType) Name() string { return t.name }
func (t *scriptType) Class() bool  { return t.class }

func (t *scriptType) Methods() []compiler.Method {
	out := make([]compiler.Method, len(t.methods))
	for i, m := range t.methods {
		out[i] = m
	}
	return out
}

func (t *scriptType) MethodByName(name string) (compiler.Method, bool) {
	for _, m := range t.methods {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

type scriptMethod struct {
	interp   *interp.Interpreter
	typeName string
	name     string
	ptrRecv  bool
}

func (m *scriptMethod) Name() string { return m.name }

// Static maps value receivers to the static calling convention: the method
// runs on a throwaway receiver. Pointer receivers need a constructed
// instance.
func (m *scriptMethod) Static() bool { return !m.ptrRecv }

func (m *scriptMethod) Bind() (func(args []string) error, error) {
	expr := fmt.Sprintf("%s{}.%s", m.typeName, m.name)
	if m.ptrRecv {
		expr = fmt.Sprintf("(&%s{}).%s", m.typeName, m.name)
	}
	v, err := m.interp.Eval(expr)
	if err != nil {
		return nil, fmt.Errorf("construct %s: %w", m.typeName, err)
	}
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s.%s is not callable", m.typeName, m.name)
	}
	return m.caller(v), nil
}

func (m *scriptMethod) caller(fn reflect.Value) func(args []string) error {
	return func(args []string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = panicValueToError(r)
			}
		}()
		if args == nil {
			args = []string{}
		}
		ft := fn.Type()
		if ft.NumIn() != 1 || !reflect.TypeOf(args).AssignableTo(ft.In(0)) {
			return fmt.Errorf("%s.%s must accept a single []string parameter", m.typeName, m.name)
		}
		var out []reflect.Value
		if ft.IsVariadic() {
			out = fn.CallSlice([]reflect.Value{reflect.ValueOf(args)})
		} else {
			out = fn.Call([]reflect.Value{reflect.ValueOf(args)})
		}
		if n := len(out); n > 0 {
			last := out[n-1]
			if last.Type().Implements(errType) && !last.IsNil() {
				return last.Interface().(error)
			}
		}
		return nil
	}
}

func panicValueToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// buildTypeTable collects the script's defined types and the methods
// declared directly on them, in declaration order.
func buildTypeTable(file *ast.File) []*scriptType {
	var table []*scriptType
	index := make(map[string]*scriptType)
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			_, isStruct := ts.Type.(*ast.StructType)
			t := &scriptType{
				name:  ts.Name.Name,
				class: isStruct && !ts.Assign.IsValid(),
			}
			table = append(table, t)
			if _, dup := index[t.name]; !dup {
				index[t.name] = t
			}
		}
	}
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}
		base, ptr := receiverBase(fd.Recv.List[0].Type)
		if base == "" {
			continue
		}
		t := index[base]
		if t == nil {
			continue
		}
		t.methods = append(t.methods, &scriptMethod{
			typeName: base,
			name:     fd.Name.Name,
			ptrRecv:  ptr,
		})
	}
	return table
}

func receiverBase(expr ast.Expr) (name string, ptr bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		ptr = true
		expr = star.X
	}
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, ptr
	case *ast.IndexExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name, ptr
		}
	case *ast.IndexListExpr:
		if id, ok := e.X.(*ast.Ident); ok {
			return id.Name, ptr
		}
	}
	return "", ptr
}
