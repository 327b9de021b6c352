package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var auditLogger *AuditLogger

type AuditLogger struct {
	mu             sync.Mutex
	out            io.Writer
	printToConsole bool
}

func InitAuditLogger(out io.Writer, printToConsole bool) {
	auditLogger = &AuditLogger{out: out, printToConsole: printToConsole}
	// write csv headers
	_, _ = auditLogger.out.Write([]byte(fmt.Sprintf("%v ; %v ; %v ; %v ; %v ; %v\n", "time", "nodeId", "eventType", "from->to", "id", "text")))
}

// CloseAuditLogger detaches the audit log, later audit calls are dropped.
func CloseAuditLogger() {
	auditLogger = nil
}

func (logger *AuditLogger) log(text string, now int64) {
	toPrint := []byte(fmt.Sprintf("%v ; %v\n", now, text))
	logger.mu.Lock()
	defer logger.mu.Unlock()
	_, _ = logger.out.Write(toPrint)
	if logger.printToConsole {
		_, _ = os.Stdout.Write(toPrint)
	}
}

func Audit(nodeId string, t string, id string, text string, now int64) {
	if auditLogger != nil {
		auditLogger.log(fmt.Sprintf("%v ; %v ; ; %v ; %v", nodeId, t, id, text), now)
	}
}

func AuditEvent(nodeId string, t fmt.Stringer, id string, text string, now int64) {
	if auditLogger != nil {
		auditLogger.log(fmt.Sprintf("%v ; %v ; ; %v ; %v", nodeId, t, id, text), now)
	}
}
