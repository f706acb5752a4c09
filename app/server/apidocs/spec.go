package apidocs

import (
	"github.com/getkin/kin-openapi/openapi3"
	appconfig "hello-world-site/app/server/config"
	"hello-world-site/app/server/constants"
	"net/http"
	"strconv"
)

const securitySchemeName = "admin"

// Spec 生成接口的 OpenAPI 3 文档，认证方式随 authMode 变化
func Spec(authMode string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Hello World API",
			Description: "Hello World 网站管理后台 API",
			Version:     constants.APIVersion,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				securitySchemeName: &openapi3.SecuritySchemeRef{Value: securityScheme(authMode)},
			},
		},
	}

	guarded := openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate(securitySchemeName))

	// 公开接口
	doc.Paths.Set("/api/health", &openapi3.PathItem{
		Get: operation("health", "公开API", "健康检查", nil, responses(http.StatusOK, healthSchema())),
	})
	doc.Paths.Set("/api/config", &openapi3.PathItem{
		Get: operation("getConfig", "公开API", "获取网站配置", nil, responses(http.StatusOK, configSchema())),
	})
	doc.Paths.Set("/api/log", &openapi3.PathItem{
		Post: operation("addLog", "公开API", "记录访问日志", nil, responses(http.StatusOK, messageSchema())),
	})

	// 管理接口
	login := operation("login", "管理后台", "管理员登录", nil,
		responses(http.StatusOK, loginSchema(), http.StatusBadRequest, nil, http.StatusUnauthorized, nil))
	login.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(
		openapi3.NewObjectSchema().
			WithProperty("username", openapi3.NewStringSchema()).
			WithProperty("password", openapi3.NewStringSchema().WithMaxLength(constants.MaxPasswordLength)),
	)}
	doc.Paths.Set("/api/admin/login", &openapi3.PathItem{Post: login})

	doc.Paths.Set("/api/admin/logout", &openapi3.PathItem{
		Post: operation("logout", "管理后台", "退出登录", guarded, responses(http.StatusOK, messageSchema(), http.StatusUnauthorized, nil)),
	})
	doc.Paths.Set("/api/admin/check", &openapi3.PathItem{
		Get: operation("check", "管理后台", "检查登录状态", nil, responses(http.StatusOK, checkSchema())),
	})

	updateConfig := operation("updateConfig", "管理后台", "更新网站配置", guarded,
		responses(http.StatusOK, messageSchema(), http.StatusBadRequest, nil, http.StatusUnauthorized, nil))
	updateConfig.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(
		openapi3.NewObjectSchema().
			WithProperty("main_title", openapi3.NewStringSchema().WithMaxLength(constants.MaxMainTitleLength)).
			WithProperty("sub_title", openapi3.NewStringSchema().WithMaxLength(constants.MaxSubTitleLength)),
	)}
	doc.Paths.Set("/api/admin/config", &openapi3.PathItem{
		Get: operation("getAdminConfig", "管理后台", "获取网站配置（管理员）", guarded,
			responses(http.StatusOK, configSchema(), http.StatusUnauthorized, nil)),
		Put: updateConfig,
	})

	listLogs := operation("listLogs", "管理后台", "获取访问日志", guarded,
		responses(http.StatusOK, logListSchema(), http.StatusBadRequest, nil, http.StatusUnauthorized, nil))
	listLogs.Parameters = openapi3.Parameters{
		{Value: openapi3.NewQueryParameter("page").WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
		{Value: openapi3.NewQueryParameter("page_size").WithSchema(openapi3.NewIntegerSchema().WithMin(1).WithMax(constants.MaxPageSize))},
	}
	doc.Paths.Set("/api/admin/logs", &openapi3.PathItem{Get: listLogs})

	doc.Paths.Set("/api/admin/profile", &openapi3.PathItem{
		Get: operation("profile", "管理后台", "获取当前管理员信息", guarded,
			responses(http.StatusOK, profileSchema(), http.StatusUnauthorized, nil, http.StatusNotFound, nil)),
	})

	updatePassword := operation("updatePassword", "管理后台", "修改密码", guarded,
		responses(http.StatusOK, messageSchema(), http.StatusBadRequest, nil, http.StatusUnauthorized, nil, http.StatusNotFound, nil))
	updatePassword.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(
		openapi3.NewObjectSchema().
			WithProperty("old_password", openapi3.NewStringSchema()).
			WithProperty("new_password", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(constants.MaxPasswordLength)),
	)}
	doc.Paths.Set("/api/admin/password", &openapi3.PathItem{Put: updatePassword})

	return doc
}

func securityScheme(authMode string) *openapi3.SecurityScheme {
	if authMode == appconfig.AuthModeSession {
		return &openapi3.SecurityScheme{
			Type: "apiKey",
			In:   "cookie",
			Name: constants.SessionCookieName,
		}
	}
	return openapi3.NewJWTSecurityScheme()
}

func operation(id, tag, summary string, security *openapi3.SecurityRequirements, res *openapi3.Responses) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Tags = []string{tag}
	op.Summary = summary
	op.Security = security
	op.Responses = res
	return op
}

// responses 接受 状态码, schema 交替的参数， schema 为 nil 时使用错误格式
func responses(pairs ...interface{}) *openapi3.Responses {
	res := &openapi3.Responses{}
	for i := 0; i+1 < len(pairs); i += 2 {
		code := pairs[i].(int)
		schema, _ := pairs[i+1].(*openapi3.Schema)
		if schema == nil {
			schema = errorSchema()
		}
		res.Set(strconv.Itoa(code), &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(http.StatusText(code)).WithJSONSchema(schema),
		})
	}
	// 所有接口都可能返回 500
	res.Set(strconv.Itoa(http.StatusInternalServerError), &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(http.StatusText(http.StatusInternalServerError)).WithJSONSchema(errorSchema()),
	})
	return res
}

func errorSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema())
}

func messageSchema() *openapi3.Schema {
	return errorSchema()
}

func healthSchema() *openapi3.Schema {
	return errorSchema().WithProperty("timestamp", openapi3.NewStringSchema())
}

func siteConfigSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("main_title", openapi3.NewStringSchema()).
		WithProperty("sub_title", openapi3.NewStringSchema())
}

func configSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("data", siteConfigSchema())
}

func loginSchema() *openapi3.Schema {
	return errorSchema().WithProperty("data", openapi3.NewObjectSchema().
		WithProperty("token", openapi3.NewStringSchema()).
		WithProperty("username", openapi3.NewStringSchema()).
		WithProperty("admin", openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("username", openapi3.NewStringSchema())))
}

func checkSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("data", openapi3.NewObjectSchema().
			WithProperty("logged_in", openapi3.NewBoolSchema()).
			WithProperty("username", openapi3.NewStringSchema()))
}

func logListSchema() *openapi3.Schema {
	item := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("ip_address", openapi3.NewStringSchema()).
		WithProperty("user_agent", openapi3.NewStringSchema().WithNullable()).
		WithProperty("access_time", openapi3.NewStringSchema())
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("data", openapi3.NewArraySchema().WithItems(item)).
		WithProperty("pagination", openapi3.NewObjectSchema().
			WithProperty("page", openapi3.NewIntegerSchema()).
			WithProperty("page_size", openapi3.NewIntegerSchema()).
			WithProperty("total", openapi3.NewIntegerSchema()).
			WithProperty("total_pages", openapi3.NewIntegerSchema()))
}

func profileSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("data", openapi3.NewObjectSchema().
			WithProperty("id", openapi3.NewIntegerSchema()).
			WithProperty("username", openapi3.NewStringSchema()).
			WithProperty("created_at", openapi3.NewDateTimeSchema()))
}
