package fold

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("ftfold.fold")
