package tools

import (
	"fmt"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
)

func DirExist(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SendAttachment 以附件形式返回内存中的文件内容
func SendAttachment(c *gin.Context, displayName, contentType string, data []byte) {
	escaped := url.QueryEscape(displayName)
	c.Header(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, escaped, escaped),
	)
	c.Data(200, contentType, data)
}
