package billingserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/http/mapper"
	checkouthttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/adapters/http/mapper"
	groceryhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/http/mapper"
	orderhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/http/mapper"
	reporthttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/adapters/http/mapper"
	userhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/http/mapper"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

// problems maps every bounded context's errors onto RFC 7807 responses.
// Identity is checked first so a missing owner is always a 401.
var problems = apierrors.NewChainedResponder("",
	identityProblem,
	userhttpmapper.ProblemFor,
	cataloghttpmapper.ProblemFor,
	checkouthttpmapper.ProblemFor,
	orderhttpmapper.ProblemFor,
	reporthttpmapper.ProblemFor,
	groceryhttpmapper.ProblemFor,
)

func identityProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, identity.ErrMissingOwner) {
		return apierrors.ErrUnauthorized.WithDetail("Unauthorized"), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError renders an application error through the mapper chain.
func respondServiceError(c *gin.Context, err error) {
	problems.RespondError(c, err)
}

func respondUnauthenticated(c *gin.Context) {
	problems.Unauthorized(c, "Unauthorized")
	c.Abort()
}

// respondError renders transport-level failures such as malformed bodies.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	problems.Respond(c, apierrors.ForStatus(status).WithDetail(err.Error()))
}

// respondBadRequest reports a missing or invalid request field.
func respondBadRequest(c *gin.Context, detail string) {
	problems.BadRequest(c, detail)
}
