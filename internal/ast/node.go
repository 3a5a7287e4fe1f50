package ast

func (m *Module) NodePos() Position    { return m.Pos }
func (m *Module) NodeEndPos() Position { return m.EndPos }
func (*Module) NodeType() NodeType     { return MODULE }

func (i *Import) NodePos() Position    { return i.Pos }
func (i *Import) NodeEndPos() Position { return i.EndPos }
func (*Import) NodeType() NodeType     { return IMPORT }

func (i *ImportFrom) NodePos() Position    { return i.Pos }
func (i *ImportFrom) NodeEndPos() Position { return i.EndPos }
func (*ImportFrom) NodeType() NodeType     { return IMPORT_FROM }

func (c *ClassDef) NodePos() Position    { return c.Pos }
func (c *ClassDef) NodeEndPos() Position { return c.EndPos }
func (*ClassDef) NodeType() NodeType     { return CLASS_DEF }

func (f *FunctionDef) NodePos() Position    { return f.Pos }
func (f *FunctionDef) NodeEndPos() Position { return f.EndPos }
func (*FunctionDef) NodeType() NodeType     { return FUNCTION_DEF }

func (a *AnnAssign) NodePos() Position    { return a.Pos }
func (a *AnnAssign) NodeEndPos() Position { return a.EndPos }
func (*AnnAssign) NodeType() NodeType     { return ANN_ASSIGN }

func (r *Raise) NodePos() Position    { return r.Pos }
func (r *Raise) NodeEndPos() Position { return r.EndPos }
func (*Raise) NodeType() NodeType     { return RAISE_STMT }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (n *Name) NodePos() Position    { return n.Pos }
func (n *Name) NodeEndPos() Position { return n.EndPos }
func (*Name) NodeType() NodeType     { return NAME }

func (a *Attribute) NodePos() Position    { return a.Pos }
func (a *Attribute) NodeEndPos() Position { return a.EndPos }
func (*Attribute) NodeType() NodeType     { return ATTRIBUTE_EXPR }

func (c *Call) NodePos() Position    { return c.Pos }
func (c *Call) NodeEndPos() Position { return c.EndPos }
func (*Call) NodeType() NodeType     { return CALL_EXPR }

func (s *Subscript) NodePos() Position    { return s.Pos }
func (s *Subscript) NodeEndPos() Position { return s.EndPos }
func (*Subscript) NodeType() NodeType     { return SUBSCRIPT_EXPR }

func (c *Constant) NodePos() Position    { return c.Pos }
func (c *Constant) NodeEndPos() Position { return c.EndPos }
func (*Constant) NodeType() NodeType     { return CONSTANT_EXPR }

func (t *Tuple) NodePos() Position    { return t.Pos }
func (t *Tuple) NodeEndPos() Position { return t.EndPos }
func (*Tuple) NodeType() NodeType     { return TUPLE_EXPR }

func (l *Lambda) NodePos() Position    { return l.Pos }
func (l *Lambda) NodeEndPos() Position { return l.EndPos }
func (*Lambda) NodeType() NodeType     { return LAMBDA_EXPR }

func (o *OpaqueExpr) NodePos() Position    { return o.Pos }
func (o *OpaqueExpr) NodeEndPos() Position { return o.EndPos }
func (*OpaqueExpr) NodeType() NodeType     { return OPAQUE_EXPR }
