package safety

// Modules forbidden in deterministic contracts. Matching is on the
// first path segment so "os.path" is caught via "os".
var forbiddenModules = map[string]bool{
	"random":          true,
	"os":              true,
	"sys":             true,
	"subprocess":      true,
	"threading":       true,
	"multiprocessing": true,
	"asyncio":         true,
	"socket":          true,
	"http":            true,
	"requests":        true,
	"pickle":          true,
	"shelve":          true,
	"sqlite3":         true,
	"tempfile":        true,
	"shutil":          true,
	"glob":            true,
	"pathlib":         true,
	"io":              true,
	"builtins":        true,
}

// Full module paths that look forbidden but are deterministic. Checked
// before the first-segment denylist.
var allowedModules = map[string]bool{
	"urllib.parse": true, // URL parsing only, no network
}

// Calls that are non-deterministic regardless of how the module was
// imported. datetime.now is absent: the SDK ships a deterministic one.
var forbiddenCalls = map[string]bool{
	"time.time":      true,
	"time.localtime": true,
	"time.gmtime":    true,
	"uuid.uuid1":     true,
	"uuid.uuid4":     true,
}

// Builtin exception types that must not be raised inside a contract.
// They crash the VM with a generic exit code, losing the message and
// breaking consensus. Contracts raise gl.vm.UserError instead.
var builtinExceptions = map[string]bool{
	"BaseException": true, "Exception": true, "ArithmeticError": true,
	"AssertionError": true, "AttributeError": true, "BlockingIOError": true,
	"BrokenPipeError": true, "BufferError": true, "ChildProcessError": true,
	"ConnectionAbortedError": true, "ConnectionError": true,
	"ConnectionRefusedError": true, "ConnectionResetError": true,
	"EOFError": true, "FileExistsError": true, "FileNotFoundError": true,
	"FloatingPointError": true, "GeneratorExit": true, "IOError": true,
	"ImportError": true, "IndexError": true, "InterruptedError": true,
	"IsADirectoryError": true, "KeyError": true, "KeyboardInterrupt": true,
	"LookupError": true, "MemoryError": true, "ModuleNotFoundError": true,
	"NameError": true, "NotADirectoryError": true, "NotImplementedError": true,
	"OSError": true, "OverflowError": true, "PermissionError": true,
	"ProcessLookupError": true, "RecursionError": true, "ReferenceError": true,
	"RuntimeError": true, "StopAsyncIteration": true, "StopIteration": true,
	"SyntaxError": true, "SystemError": true, "SystemExit": true,
	"TimeoutError": true, "TypeError": true, "UnboundLocalError": true,
	"UnicodeDecodeError": true, "UnicodeEncodeError": true,
	"UnicodeError": true, "UnicodeTranslateError": true, "ValueError": true,
	"ZeroDivisionError": true,
}

// NondetPrefix marks the SDK namespace whose calls require an
// equivalence boundary.
const NondetPrefix = "gl.nondet."

// safePatterns maps equivalence-boundary entry calls to the positions
// of their callable arguments.
var safePatterns = map[string][]int{
	"gl.vm.run_nondet":                       {0, 1},
	"gl.vm.run_nondet_unsafe":                {0, 1},
	"gl.eq_principle.strict_eq":              {0},
	"gl.eq_principle.prompt_comparative":     {0},
	"gl.eq_principle.prompt_non_comparative": {0},
}
