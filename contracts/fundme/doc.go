/*
Package fundme implements FundMe contract which collects GAS contributions
and lets its owner withdraw them.

Any account can contribute GAS either with Fund method or with a plain GAS
transfer to the contract address. Every contribution must be worth at least
50 USD according to the latest price of GAS returned by the price feed
contract set on deployment. Contract keeps the amount contributed by every
funder and the list of contributions made since the last withdrawal.

The owner set on deployment withdraws all collected GAS with Withdraw or
CheaperWithdraw methods. Both reset contributions of all funders and differ
only in the way the list of funders is read from storage.

# Contract notifications

Funded notification. This notification is produced when a contribution is
accepted.

	Funded:
	  - name: funder
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrawn notification. This notification is produced when the owner
withdraws collected funds.

	Withdrawn:
	  - name: owner
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package fundme

/*
Contract storage model.

# Summary
Key-value storage format:
  - 'o' -> interop.Hash160
    owner of the contract
  - 'p' -> interop.Hash160
    price feed contract
  - 'c' -> int
    number of contributions since the last withdrawal
  - f<int> -> interop.Hash160
    funder of the contribution with the given index
  - a<interop.Hash160> -> int
    total amount of GAS contributed by the funder since the last withdrawal

# Accounting
Contract holds exactly the sum of all contributions. Zero amounts are not
stored.
*/
