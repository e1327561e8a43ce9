// Package main 启动应用程序
package main

import "github.com/yeisme/docvault/pkg/cmd"

//	@title			DocVault API
//	@version		1.0
//	@description	DocVault 管理作品集站点的文档与文件夹，支持简历上传、批量操作与外部凭证镜像。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
